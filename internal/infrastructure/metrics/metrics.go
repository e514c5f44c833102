package metrics

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"campustix/internal/domain/entities"
	"campustix/internal/ports/output"
)

var _ output.Metrics = (*Recorder)(nil)

// Recorder counts booking outcomes and lifecycle transitions.
type Recorder struct {
	bookings    *prometheus.CounterVec
	transitions *prometheus.CounterVec
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		bookings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campustix_booking_attempts_total",
				Help: "Booking attempts by outcome",
			},
			[]string{"outcome"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campustix_event_transitions_total",
				Help: "Event lifecycle operations that committed",
			},
			[]string{"transition"},
		),
	}
	reg.MustRegister(r.bookings, r.transitions)
	return r
}

func (r *Recorder) BookingAttempt(outcome string) {
	r.bookings.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Transition(name string) {
	r.transitions.WithLabelValues(name).Inc()
}

type EventLister interface {
	ListEvents(ctx context.Context, filter output.EventFilter) ([]entities.Event, error)
}

type RemainingCounter interface {
	TicketsRemaining(ctx context.Context, eventID uint) (int, error)
}

// InventoryCollector exports capacity and remaining tickets of upcoming
// events, read from the store at scrape time.
type InventoryCollector struct {
	events  EventLister
	tickets RemainingCounter
	clock   output.Clock
	timeout time.Duration

	capacity  *prometheus.Desc
	remaining *prometheus.Desc
	suggested *prometheus.Desc
}

func NewInventoryCollector(events EventLister, tickets RemainingCounter, clock output.Clock) *InventoryCollector {
	return &InventoryCollector{
		events:  events,
		tickets: tickets,
		clock:   clock,
		timeout: 5 * time.Second,
		capacity: prometheus.NewDesc(
			"campustix_event_capacity",
			"Ticket capacity of upcoming approved events",
			[]string{"event_id", "category"}, nil,
		),
		remaining: prometheus.NewDesc(
			"campustix_event_tickets_remaining",
			"Tickets left for upcoming approved events",
			[]string{"event_id", "category"}, nil,
		),
		suggested: prometheus.NewDesc(
			"campustix_suggested_events",
			"Suggestions waiting for review",
			nil, nil,
		),
	}
}

func (c *InventoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.capacity
	ch <- c.remaining
	ch <- c.suggested
}

func (c *InventoryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	upcoming, err := c.events.ListEvents(ctx, output.EventFilter{
		State: entities.StateApproved,
		After: c.clock.Now(),
	})
	if err != nil {
		log.Printf("❌ Collecte des métriques d'inventaire: %v", err)
		return
	}
	for _, e := range upcoming {
		id := strconv.FormatUint(uint64(e.ID), 10)
		left, err := c.tickets.TicketsRemaining(ctx, e.ID)
		if err != nil {
			log.Printf("❌ Billets restants pour l'événement %d: %v", e.ID, err)
			continue
		}
		ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(e.Capacity), id, string(e.Category))
		ch <- prometheus.MustNewConstMetric(c.remaining, prometheus.GaugeValue, float64(left), id, string(e.Category))
	}

	suggested, err := c.events.ListEvents(ctx, output.EventFilter{State: entities.StateSuggested})
	if err != nil {
		log.Printf("❌ Collecte des suggestions: %v", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.suggested, prometheus.GaugeValue, float64(len(suggested)))
}
