package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSnapshotter struct {
	mock.Mock
}

func (m *MockSnapshotter) Save(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockSnapshotter) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSnapshotter) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
