package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationOutcomes counts control activations by rules outcome.
	ReservationOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "truckbook",
		Name:      "reservation_outcomes_total",
		Help:      "Vehicle control activations by outcome.",
	}, []string{"outcome"})

	// FleetResets counts committed resets by trigger (scheduled or manual).
	FleetResets = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "truckbook",
		Name:      "fleet_resets_total",
		Help:      "Committed fleet resets.",
	}, []string{"trigger"})

	StoreFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "truckbook",
		Name:      "store_failures_total",
		Help:      "Fleet store load or save failures.",
	})

	NotificationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "truckbook",
		Name:      "notification_failures_total",
		Help:      "Announcements that could not be delivered, by channel.",
	}, []string{"channel"})
)
