package service

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"truckbook/internal/db"
	apperrors "truckbook/internal/errors"
	"truckbook/internal/metrics"
	"truckbook/internal/repository"
)

// ReservationService serializes every load-decide-save cycle on the fleet.
// Reset from the scheduler goes through the same lock as button presses.
type ReservationService struct {
	Repo repository.FleetStore
	mu   sync.Mutex
}

func NewReservationService(repo repository.FleetStore) *ReservationService {
	return &ReservationService{Repo: repo}
}

// Roster returns the current fleet.
func (s *ReservationService) Roster(ctx context.Context) (db.Fleet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Toggle books or releases the vehicle with the given key for userID.
// Unknown keys produce OutcomeInvalidIndex. The fleet is saved only when the
// outcome mutates it; if that save fails the decision is returned together
// with an error wrapping ErrPersistence and must not be treated as committed.
func (s *ReservationService) Toggle(ctx context.Context, vehicleID, userID string) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fleet, err := s.load(ctx)
	if err != nil {
		return Decision{}, err
	}

	decision := Toggle(fleet, fleet.IndexOf(vehicleID), userID)
	if !decision.Outcome.Mutates() {
		return decision, nil
	}
	if err := s.save(ctx, decision.Fleet); err != nil {
		return decision, err
	}
	log.WithFields(log.Fields{
		"user_id": userID,
		"vehicle": decision.Vehicle,
		"outcome": decision.Outcome.String(),
	}).Info("Fleet updated")
	return decision, nil
}

// Reset frees every vehicle and saves the result.
func (s *ReservationService) Reset(ctx context.Context) (db.Fleet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fleet, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	next := Reset(fleet)
	if err := s.save(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *ReservationService) load(ctx context.Context) (db.Fleet, error) {
	fleet, err := s.Repo.Load(ctx)
	if err != nil {
		metrics.StoreFailures.Inc()
		log.WithError(err).Error("Failed to load fleet")
		return nil, fmt.Errorf("%w: load: %w", apperrors.ErrPersistence, err)
	}
	return fleet, nil
}

func (s *ReservationService) save(ctx context.Context, fleet db.Fleet) error {
	if err := s.Repo.Save(ctx, fleet); err != nil {
		metrics.StoreFailures.Inc()
		log.WithError(err).Error("Failed to save fleet")
		return fmt.Errorf("%w: save: %w", apperrors.ErrPersistence, err)
	}
	return nil
}
