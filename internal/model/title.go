package model

import "time"

// Title represents a catalog entry: one book and the copies the library owns
// of it. It is a pure domain model with no database-specific dependencies or
// tags, so it can be used across layers (HTTP, service, storage) without
// coupling to persistence.
//
// Invariants, maintained by the lending ledger:
//   - 1 <= CopyCount
//   - 0 <= AvailableCount <= CopyCount
//   - len(BorrowRecords) == CopyCount - AvailableCount
type Title struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Author         string         `json:"author"`
	Category       string         `json:"category"`
	Cover          string         `json:"cover"`
	CopyCount      int            `json:"copy_count"`
	AvailableCount int            `json:"available_count"`
	BorrowRecords  []BorrowRecord `json:"borrow_records"`
}

// BorrowRecord is one outstanding loan of one copy to one holder. Records are
// created by a borrow and destroyed by the matching return; they are never
// mutated in place. A holder has at most one active record per title.
type BorrowRecord struct {
	HolderID   string    `json:"holder_id"`
	HolderName string    `json:"holder_name"`
	DueDate    time.Time `json:"due_date"`
}

// Clone returns a deep copy of the title. Callers outside the ledger only ever
// see clones, so a returned snapshot can be read without holding any lock.
func (t *Title) Clone() *Title {
	out := *t
	if t.BorrowRecords != nil {
		out.BorrowRecords = make([]BorrowRecord, len(t.BorrowRecords))
		copy(out.BorrowRecords, t.BorrowRecords)
	}
	return &out
}

// RecordFor returns the index of the active borrow record held by holderID,
// or -1 when the holder has no copy of this title.
func (t *Title) RecordFor(holderID string) int {
	for i, r := range t.BorrowRecords {
		if r.HolderID == holderID {
			return i
		}
	}
	return -1
}
