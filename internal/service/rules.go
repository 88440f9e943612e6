package service

import "truckbook/internal/db"

// Outcome classifies the result of a control activation.
type Outcome int

const (
	OutcomeInvalidIndex Outcome = iota
	OutcomeBooked
	OutcomeReleased
	OutcomeAlreadyHoldingOther
	OutcomeAlreadyTakenByOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBooked:
		return "booked"
	case OutcomeReleased:
		return "released"
	case OutcomeAlreadyHoldingOther:
		return "already_holding_other"
	case OutcomeAlreadyTakenByOther:
		return "already_taken_by_other"
	default:
		return "invalid_index"
	}
}

// Mutates reports whether the outcome changed the fleet and must be saved.
func (o Outcome) Mutates() bool {
	return o == OutcomeBooked || o == OutcomeReleased
}

// Decision is the result of Toggle. Vehicle names the vehicle the outcome is
// about: the one already held for OutcomeAlreadyHoldingOther, the target
// otherwise. It is empty for OutcomeInvalidIndex.
type Decision struct {
	Outcome Outcome
	Fleet   db.Fleet
	Vehicle string
}

// Toggle books or releases fleet[index] for userID. The input fleet is never
// modified; the returned fleet is a copy.
//
// The checks run in a fixed order. The "already holding another vehicle"
// check comes before the release check so a user can never hold two
// vehicles, but it skips the target so the holder can still release it.
func Toggle(fleet db.Fleet, index int, userID string) Decision {
	next := fleet.Clone()
	if index < 0 || index >= len(next) {
		return Decision{Outcome: OutcomeInvalidIndex, Fleet: next}
	}

	for i, v := range next {
		if i != index && v.OccupiedBy(userID) {
			return Decision{Outcome: OutcomeAlreadyHoldingOther, Fleet: next, Vehicle: v.Name}
		}
	}

	target := &next[index]
	switch {
	case target.OccupiedBy(userID):
		target.Free = true
		target.Occupant = nil
		return Decision{Outcome: OutcomeReleased, Fleet: next, Vehicle: target.Name}
	case !target.Free:
		return Decision{Outcome: OutcomeAlreadyTakenByOther, Fleet: next, Vehicle: target.Name}
	default:
		occupant := userID
		target.Free = false
		target.Occupant = &occupant
		return Decision{Outcome: OutcomeBooked, Fleet: next, Vehicle: target.Name}
	}
}

// Reset frees every vehicle.
func Reset(fleet db.Fleet) db.Fleet {
	next := fleet.Clone()
	for i := range next {
		next[i].Free = true
		next[i].Occupant = nil
	}
	return next
}
