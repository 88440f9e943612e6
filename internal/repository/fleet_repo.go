package repository

import (
	"context"
	"fmt"
	"sync"

	"truckbook/internal/db"
)

// FleetStore persists the whole roster. There are no partial updates.
type FleetStore interface {
	Load(ctx context.Context) (db.Fleet, error)
	Save(ctx context.Context, fleet db.Fleet) error
}

// MemoryFleetStore keeps the roster in process. State is lost on restart.
type MemoryFleetStore struct {
	mu    sync.Mutex
	fleet db.Fleet
}

func NewMemoryFleetStore(initial db.Fleet) *MemoryFleetStore {
	return &MemoryFleetStore{fleet: initial.Clone()}
}

func (s *MemoryFleetStore) Load(ctx context.Context) (db.Fleet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fleet.Clone(), nil
}

func (s *MemoryFleetStore) Save(ctx context.Context, fleet db.Fleet) error {
	if err := fleet.Validate(); err != nil {
		return fmt.Errorf("refusing to save roster: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fleet = fleet.Clone()
	return nil
}
