package db

import (
	"fmt"

	"github.com/google/uuid"

	apperrors "truckbook/internal/errors"
)

// vehicleNamespace seeds name-based vehicle keys so the same roster always
// yields the same keys, whatever store it lives in.
var vehicleNamespace = uuid.MustParse("3f1c2a9e-6b1d-4f0a-9a57-2d3c8e71b0c4")

// MaxFleetSize is the most vehicles one roster message can carry: five rows
// of five buttons.
const MaxFleetSize = 25

// DefaultRoster is the fleet used when nothing has been persisted yet.
var DefaultRoster = []string{
	"Scania R730 #1",
	"Scania R730 #2",
	"Scania R730 #3",
	"Scania R730 #4",
	"Scania R730 #5",
	"Freightliner Century #1",
	"Freightliner Century #2",
	"Freightliner Century #3",
}

type Vehicle struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Free     bool    `json:"free"`
	Occupant *string `json:"occupant,omitempty"`
}

// Fleet is the ordered roster. Position is display order only; vehicles are
// addressed by ID.
type Fleet []Vehicle

// VehicleID returns the stable key for a vehicle name.
func VehicleID(name string) string {
	return uuid.NewSHA1(vehicleNamespace, []byte(name)).String()
}

// NewVehicle returns a free vehicle with a key derived from its name.
func NewVehicle(name string) Vehicle {
	return Vehicle{ID: VehicleID(name), Name: name, Free: true}
}

// NewFleet builds a free fleet from the given names.
func NewFleet(names []string) Fleet {
	fleet := make(Fleet, 0, len(names))
	for _, name := range names {
		fleet = append(fleet, NewVehicle(name))
	}
	return fleet
}

// OccupiedBy reports whether the vehicle is booked by userID.
func (v Vehicle) OccupiedBy(userID string) bool {
	return !v.Free && v.Occupant != nil && *v.Occupant == userID
}

// Clone returns a deep copy; occupant pointers are not shared.
func (f Fleet) Clone() Fleet {
	if f == nil {
		return nil
	}
	out := make(Fleet, len(f))
	for i, v := range f {
		out[i] = v
		if v.Occupant != nil {
			occupant := *v.Occupant
			out[i].Occupant = &occupant
		}
	}
	return out
}

// IndexOf returns the position of the vehicle with the given key, or -1.
func (f Fleet) IndexOf(id string) int {
	for i, v := range f {
		if v.ID == id {
			return i
		}
	}
	return -1
}

// HeldBy returns the position of the vehicle booked by userID, or -1.
func (f Fleet) HeldBy(userID string) int {
	for i, v := range f {
		if v.OccupiedBy(userID) {
			return i
		}
	}
	return -1
}

// Validate checks the roster size, that names and keys are unique and
// non-empty, and that every vehicle has an occupant exactly when it is booked.
func (f Fleet) Validate() error {
	if len(f) > MaxFleetSize {
		return fmt.Errorf("%w: %d vehicles, at most %d fit", apperrors.ErrInvalidRoster, len(f), MaxFleetSize)
	}
	ids := make(map[string]struct{}, len(f))
	names := make(map[string]struct{}, len(f))
	for i, v := range f {
		if v.Name == "" {
			return fmt.Errorf("%w: vehicle %d has no name", apperrors.ErrInvalidRoster, i)
		}
		if v.ID == "" {
			return fmt.Errorf("%w: vehicle %q has no id", apperrors.ErrInvalidRoster, v.Name)
		}
		if _, dup := names[v.Name]; dup {
			return fmt.Errorf("%w: duplicate vehicle name %q", apperrors.ErrInvalidRoster, v.Name)
		}
		if _, dup := ids[v.ID]; dup {
			return fmt.Errorf("%w: duplicate vehicle id %q", apperrors.ErrInvalidRoster, v.ID)
		}
		if v.Free != (v.Occupant == nil) {
			return fmt.Errorf("%w: vehicle %q free=%t disagrees with occupant", apperrors.ErrInvalidRoster, v.Name, v.Free)
		}
		names[v.Name] = struct{}{}
		ids[v.ID] = struct{}{}
	}
	return nil
}
