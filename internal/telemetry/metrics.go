// Package telemetry turns domain events into Prometheus counters. It is not
// HTTP-facing; it only subscribes to the event bus.
package telemetry

import (
	"context"

	"agencyhunter_backend/internal/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	leadsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leads_saved_total",
		Help: "Total number of leads promoted or manually added",
	})
	leadsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leads_deleted_total",
		Help: "Total number of confirmed lead deletions",
	})
	duplicatesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "leads_duplicates_rejected_total",
		Help: "Total number of promotions rejected as duplicates",
	})
	statusChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lead_status_changes_total",
		Help: "Total number of pipeline stage changes through the store",
	})
	boardReconciles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_board_reconciles_total",
		Help: "Total number of board refetches, by reason",
	}, []string{"reason"})
)

// RegisterHandlers subscribes the counter handlers on the bus.
func RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadSaved{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		leadsSaved.Inc()
		return nil
	}))
	bus.Subscribe(events.LeadDeleted{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		leadsDeleted.Inc()
		return nil
	}))
	bus.Subscribe(events.LeadDuplicateRejected{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		duplicatesRejected.Inc()
		return nil
	}))
	bus.Subscribe(events.LeadStatusChanged{}.EventName(), events.HandlerFunc(func(context.Context, events.Event) error {
		statusChanges.Inc()
		return nil
	}))
	bus.Subscribe(events.BoardReconciled{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if evt, ok := e.(events.BoardReconciled); ok {
			boardReconciles.WithLabelValues(evt.Reason).Inc()
		}
		return nil
	}))
}
