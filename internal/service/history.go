package service

import (
	"context"

	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

// HistoryService exposes read access to the audit log: the full trail for
// admins and the per-holder activity view.
type HistoryService interface {
	// Full returns the complete history, newest first.
	Full(ctx context.Context) ([]model.HistoryEntry, error)

	// ForHolder returns one holder's entries in their original relative order.
	ForHolder(ctx context.Context, holderID string) ([]model.HistoryEntry, error)
}

type historyService struct {
	log repository.HistoryLog
}

// NewHistoryService constructs a read facade over the history log.
func NewHistoryService(log repository.HistoryLog) HistoryService {
	return &historyService{log: log}
}

func (s *historyService) Full(ctx context.Context) ([]model.HistoryEntry, error) {
	return s.log.ListAll(ctx)
}

func (s *historyService) ForHolder(ctx context.Context, holderID string) ([]model.HistoryEntry, error) {
	if holderID == "" {
		return nil, ErrHolderRequired
	}
	return s.log.ListByHolder(ctx, holderID)
}
