package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"libraryapi/internal/model"
)

type MockInventoryStore struct {
	mock.Mock
}

func (m *MockInventoryStore) Get(ctx context.Context, id string) (*model.Title, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockInventoryStore) List(ctx context.Context) ([]model.Title, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Title), args.Error(1)
}

func (m *MockInventoryStore) Upsert(ctx context.Context, t *model.Title) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockInventoryStore) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryStore) ReplaceAll(ctx context.Context, titles []model.Title) error {
	args := m.Called(ctx, titles)
	return args.Error(0)
}
