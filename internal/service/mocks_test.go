package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"truckbook/internal/db"
)

// MockFleetStore is a mock implementation of repository.FleetStore
type MockFleetStore struct {
	mock.Mock
}

func (m *MockFleetStore) Load(ctx context.Context) (db.Fleet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(db.Fleet).Clone(), args.Error(1)
}

func (m *MockFleetStore) Save(ctx context.Context, fleet db.Fleet) error {
	args := m.Called(ctx, fleet)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Announce(ctx context.Context, message string) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}
