package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"libraryapi/internal/model"
)

type MockHistoryLog struct {
	mock.Mock
}

func (m *MockHistoryLog) Append(ctx context.Context, e model.HistoryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockHistoryLog) ListAll(ctx context.Context) ([]model.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}

func (m *MockHistoryLog) ListByHolder(ctx context.Context, holderID string) ([]model.HistoryEntry, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}

func (m *MockHistoryLog) ReplaceAll(ctx context.Context, entries []model.HistoryEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}
