package model

import "time"

// HistoryAction is the kind of completed lending event.
type HistoryAction string

const (
	ActionBorrowed HistoryAction = "borrowed"
	ActionReturned HistoryAction = "returned"
)

// HistoryEntry is one immutable record in the append-only audit log. Entries
// are created exactly once per completed borrow or return and are never
// mutated or deleted afterwards.
//
// PenaltyPaid is set only for returned entries: 0 for an on-time return, the
// accrued late fee otherwise.
type HistoryEntry struct {
	ID          string        `json:"id"`
	TitleID     string        `json:"title_id"`
	TitleName   string        `json:"title_name"`
	HolderID    string        `json:"holder_id"`
	HolderName  string        `json:"holder_name"`
	Action      HistoryAction `json:"action"`
	Timestamp   time.Time     `json:"timestamp"`
	PenaltyPaid *int          `json:"penalty_paid,omitempty"`
}
