package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/model"
)

func TestEncodeDecode(t *testing.T) {
	saved := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	due := saved.Add(15 * 24 * time.Hour)
	penalty := 20

	state := &State{
		SavedAt: saved,
		Titles: []model.Title{
			{
				ID:             "t1",
				Title:          "Dune",
				Author:         "Frank Herbert",
				Category:       "Science Fiction",
				CopyCount:      2,
				AvailableCount: 1,
				BorrowRecords: []model.BorrowRecord{
					{HolderID: "u1", HolderName: "Alice Smith", DueDate: due},
				},
			},
		},
		History: []model.HistoryEntry{
			{
				ID:          "h2",
				TitleID:     "t1",
				TitleName:   "Dune",
				HolderID:    "u2",
				HolderName:  "Bob Johnson",
				Action:      model.ActionReturned,
				Timestamp:   saved,
				PenaltyPaid: &penalty,
			},
			{
				ID:        "h1",
				TitleID:   "t1",
				TitleName: "Dune",
				HolderID:  "u1",
				Action:    model.ActionBorrowed,
				Timestamp: saved.Add(-time.Hour),
			},
		},
	}

	data, err := Encode(state)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.True(t, got.SavedAt.Equal(saved))
	require.Len(t, got.Titles, 1)
	require.Len(t, got.Titles[0].BorrowRecords, 1)
	assert.True(t, got.Titles[0].BorrowRecords[0].DueDate.Equal(due))

	require.Len(t, got.History, 2)
	require.NotNil(t, got.History[0].PenaltyPaid)
	assert.Equal(t, 20, *got.History[0].PenaltyPaid)
	assert.Nil(t, got.History[1].PenaltyPaid)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("not a checkpoint"))
	assert.Error(t, err)
}

func TestEncode_OmitsUnsetPenalty(t *testing.T) {
	data, err := Encode(&State{
		History: []model.HistoryEntry{{ID: "h1", Action: model.ActionBorrowed}},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "penalty_paid")
}
