package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"truckbook/internal/metrics"
)

const resetJobTimeout = time.Minute

type JobService struct {
	reservations *ReservationService
	notifier     Notifier
	msgs         Messages
}

func NewJobService(reservations *ReservationService, notifier Notifier, msgs Messages) *JobService {
	return &JobService{reservations: reservations, notifier: notifier, msgs: msgs}
}

// ResetFleet frees every vehicle and then announces it. The reset is
// committed before the announcement is attempted; a failed announcement is
// logged and does not fail the job.
func (s *JobService) ResetFleet(ctx context.Context) error {
	log.Info("Cron Job: Resetting fleet...")

	fleet, err := s.reservations.Reset(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to reset fleet: %w", err)
	}
	metrics.FleetResets.WithLabelValues("scheduled").Inc()
	log.WithField("vehicles", len(fleet)).Info("Cron Job: Fleet reset, every vehicle is free")

	if s.notifier != nil {
		if err := s.notifier.Announce(ctx, s.msgs.ScheduledReset); err != nil {
			log.WithError(err).Warn("Cron Job: Reset announcement not delivered")
		}
	}
	return nil
}

// Start schedules ResetFleet on spec (standard five-field cron) in the given
// IANA time zone and starts the scheduler.
func (s *JobService) Start(spec, timezone string) (*cron.Cron, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid reset time zone %q: %w", timezone, err)
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), resetJobTimeout)
		defer cancel()
		if err := s.ResetFleet(ctx); err != nil {
			log.WithError(err).Error("Cron Job: Scheduled reset failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reset schedule %q: %w", spec, err)
	}

	c.Start()
	log.WithFields(log.Fields{"schedule": spec, "timezone": loc.String()}).Info("Daily reset scheduled")
	return c, nil
}
