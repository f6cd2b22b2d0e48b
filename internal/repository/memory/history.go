package memory

import (
	"context"
	"sync"

	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// HistoryLog is the in-memory implementation of repository.HistoryLog. New
// entries are prepended so the slice is always ordered newest first.
type HistoryLog struct {
	mu      sync.RWMutex
	entries []model.HistoryEntry
}

// NewHistoryLog creates an empty history log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

var _ repository.HistoryLog = (*HistoryLog)(nil)

// Append adds the entry at the head of the log.
func (l *HistoryLog) Append(_ context.Context, e model.HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]model.HistoryEntry{e}, l.entries...)
	return nil
}

// ListAll returns a copy of the log, newest first.
func (l *HistoryLog) ListAll(_ context.Context) ([]model.HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.HistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

// ListByHolder returns the entries for one holder, keeping their relative
// order in the log.
func (l *HistoryLog) ListByHolder(_ context.Context, holderID string) ([]model.HistoryEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]model.HistoryEntry, 0)
	for _, e := range l.entries {
		if e.HolderID == holderID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReplaceAll swaps the whole log. The given slice is copied, newest-first
// order is the caller's responsibility (checkpoints persist it as stored).
func (l *HistoryLog) ReplaceAll(_ context.Context, entries []model.HistoryEntry) error {
	next := make([]model.HistoryEntry, len(entries))
	copy(next, entries)

	l.mu.Lock()
	l.entries = next
	l.mu.Unlock()
	return nil
}
