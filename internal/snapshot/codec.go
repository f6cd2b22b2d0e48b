package snapshot

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"libraryapi/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// State is the whole persisted service state: the inventory plus the audit
// log, checkpointed as one blob. Any serialization that round-trips the
// Title/HistoryEntry fields would do; JSON keeps the blob inspectable.
type State struct {
	SavedAt time.Time            `json:"saved_at"`
	Titles  []model.Title        `json:"titles"`
	History []model.HistoryEntry `json:"history"`
}

// Encode serializes the state into a checkpoint blob.
func Encode(s *State) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses a checkpoint blob produced by Encode.
func Decode(data []byte) (*State, error) {
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
