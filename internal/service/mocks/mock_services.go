package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"libraryapi/internal/model"
	"libraryapi/internal/service"
)

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Borrow(ctx context.Context, titleID string, holder service.Holder) (*model.Title, error) {
	args := m.Called(ctx, titleID, holder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockLedgerService) Return(ctx context.Context, titleID string, holder service.Holder, actingAsAdmin bool) (*model.Title, error) {
	args := m.Called(ctx, titleID, holder, actingAsAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockLedgerService) AddTitle(ctx context.Context, in service.AddTitleInput) (*model.Title, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Title), args.Error(1)
}

func (m *MockLedgerService) RemoveTitle(ctx context.Context, titleID string) error {
	args := m.Called(ctx, titleID)
	return args.Error(0)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListTitles(ctx context.Context) ([]model.Title, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Title), args.Error(1)
}

func (m *MockCatalogService) Search(ctx context.Context, query, categoryID string) ([]model.Title, error) {
	args := m.Called(ctx, query, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Title), args.Error(1)
}

func (m *MockCatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Category), args.Error(1)
}

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Full(ctx context.Context) ([]model.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}

func (m *MockHistoryService) ForHolder(ctx context.Context, holderID string) ([]model.HistoryEntry, error) {
	args := m.Called(ctx, holderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.HistoryEntry), args.Error(1)
}
