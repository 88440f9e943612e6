package service

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"truckbook/internal/metrics"
)

// Notifier posts a public announcement to a notification destination.
type Notifier interface {
	Announce(ctx context.Context, message string) error
}

type namedNotifier struct {
	name     string
	notifier Notifier
}

// MultiNotifier fans an announcement out to every registered destination.
// One failing destination does not stop the others.
type MultiNotifier struct {
	notifiers []namedNotifier
}

func NewMultiNotifier() *MultiNotifier {
	return &MultiNotifier{}
}

// Add registers a destination under name, used in logs and metrics.
func (m *MultiNotifier) Add(name string, n Notifier) *MultiNotifier {
	m.notifiers = append(m.notifiers, namedNotifier{name: name, notifier: n})
	return m
}

// Len returns the number of registered destinations.
func (m *MultiNotifier) Len() int {
	return len(m.notifiers)
}

// Announce returns the joined errors of every failed destination.
func (m *MultiNotifier) Announce(ctx context.Context, message string) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.notifier.Announce(ctx, message); err != nil {
			metrics.NotificationFailures.WithLabelValues(n.name).Inc()
			log.WithError(err).WithField("channel", n.name).Warn("Failed to deliver announcement")
			errs = append(errs, fmt.Errorf("%s: %w", n.name, err))
		}
	}
	return errors.Join(errs...)
}
