package service

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"truckbook/internal/entities"
	apperrors "truckbook/internal/errors"
	"truckbook/internal/metrics"
	"truckbook/internal/utils"
)

const announceTimeout = 30 * time.Second

// Dispatcher turns chat events into reservation calls and renders the result.
// It knows nothing about the chat platform.
type Dispatcher struct {
	reservations *ReservationService
	notifier     Notifier
	msgs         Messages
}

func NewDispatcher(reservations *ReservationService, notifier Notifier, msgs Messages) *Dispatcher {
	return &Dispatcher{reservations: reservations, notifier: notifier, msgs: msgs}
}

// ShowRoster answers the roster command with a private copy of the fleet.
func (d *Dispatcher) ShowRoster(ctx context.Context, requester entities.Requester) entities.InteractionResponse {
	fleet, err := d.reservations.Roster(ctx)
	if err != nil {
		return d.private(d.msgs.Failure)
	}
	return entities.InteractionResponse{
		Kind:   entities.ReplyPrivate,
		Roster: RenderRoster(fleet, d.msgs),
	}
}

// ActivateControl handles a vehicle button press.
func (d *Dispatcher) ActivateControl(ctx context.Context, requester entities.Requester, controlID string) entities.InteractionResponse {
	logger := log.WithFields(log.Fields{"user_id": requester.UserID, "control_id": controlID})

	vehicleID, ok := ParseControlID(controlID)
	if !ok {
		metrics.ReservationOutcomes.WithLabelValues(OutcomeInvalidIndex.String()).Inc()
		logger.Warn("Malformed control id")
		return d.private(d.msgs.InvalidVehicle)
	}

	decision, err := d.reservations.Toggle(ctx, vehicleID, requester.UserID)
	if err != nil {
		logger.WithError(err).Error("Control activation failed")
		return d.private(d.msgs.Failure)
	}
	metrics.ReservationOutcomes.WithLabelValues(decision.Outcome.String()).Inc()

	switch decision.Outcome {
	case OutcomeBooked, OutcomeReleased:
		format := d.msgs.Booked
		if decision.Outcome == OutcomeReleased {
			format = d.msgs.Released
		}
		return entities.InteractionResponse{
			Kind:         entities.UpdateView,
			Roster:       RenderRoster(decision.Fleet, d.msgs),
			Announcement: fmt.Sprintf(format, utils.Mention(requester.UserID), decision.Vehicle),
		}
	case OutcomeAlreadyHoldingOther:
		return d.private(fmt.Sprintf(d.msgs.AlreadyHolding, decision.Vehicle))
	case OutcomeAlreadyTakenByOther:
		return d.private(fmt.Sprintf(d.msgs.AlreadyTaken, decision.Vehicle))
	default:
		logger.Warn("Control refers to an unknown vehicle")
		return d.private(d.msgs.InvalidVehicle)
	}
}

// ResetCommand frees the whole fleet on an administrator's request. Unlike the
// scheduled reset it is not announced.
func (d *Dispatcher) ResetCommand(ctx context.Context, requester entities.Requester) entities.InteractionResponse {
	if !requester.Admin {
		log.WithError(apperrors.ErrNotAuthorized).WithField("user_id", requester.UserID).Warn("Reset refused")
		return d.private(d.msgs.NotAllowed)
	}
	if _, err := d.reservations.Reset(ctx); err != nil {
		log.WithError(err).WithField("user_id", requester.UserID).Error("Manual reset failed")
		return d.private(d.msgs.Failure)
	}
	metrics.FleetResets.WithLabelValues("manual").Inc()
	log.WithField("user_id", requester.UserID).Info("Fleet reset by administrator")
	return d.private(d.msgs.ResetDone)
}

// Announce publishes a committed change on its own deadline. Failures are
// only logged.
func (d *Dispatcher) Announce(message string) {
	if d.notifier == nil || message == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), announceTimeout)
	defer cancel()
	if err := d.notifier.Announce(ctx, message); err != nil {
		log.WithError(err).Warn("Announcement not delivered")
	}
}

func (d *Dispatcher) private(content string) entities.InteractionResponse {
	return entities.InteractionResponse{Kind: entities.ReplyPrivate, Content: content}
}
