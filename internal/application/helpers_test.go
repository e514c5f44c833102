package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"campustix/internal/domain/entities"
	"campustix/internal/infrastructure/memory"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
	"campustix/pkg/tz"
)

var (
	ist = time.FixedZone("IST", 5*3600+1800)

	// 2026-03-01 10:00 IST
	testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, ist)

	student    = entities.Actor{UserID: 100, Role: entities.RoleStudent}
	csAdmin    = entities.Actor{UserID: 10, Role: entities.RoleTeacher, DepartmentID: 1}
	mathsAdmin = entities.Actor{UserID: 11, Role: entities.RoleTeacher, DepartmentID: 2}
	superAdmin = entities.Actor{UserID: 1, Role: entities.RoleSuperAdmin}
)

type recordingPublisher struct {
	mu       sync.Mutex
	topics   []string
	messages []any
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, message any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.messages = append(p.messages, message)
	return nil
}

type countingMetrics struct {
	mu          sync.Mutex
	bookings    map[string]int
	transitions map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{bookings: map[string]int{}, transitions: map[string]int{}}
}

func (m *countingMetrics) BookingAttempt(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[outcome]++
}

func (m *countingMetrics) Transition(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions[name]++
}

type fakeGateway struct {
	mu    sync.Mutex
	calls []output.PaymentRequest
	err   error
}

func (g *fakeGateway) Charge(_ context.Context, req output.PaymentRequest) (output.PaymentReceipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, req)
	if g.err != nil {
		return output.PaymentReceipt{}, g.err
	}
	return output.PaymentReceipt{Reference: "pi_test"}, nil
}

type fixture struct {
	store     *memory.Store
	clock     tz.Fixed
	publisher *recordingPublisher
	metrics   *countingMetrics
	payments  *fakeGateway
	events    *EventService
	tickets   *TicketService
}

func newFixture() *fixture {
	f := &fixture{
		store:     memory.NewStore(),
		clock:     tz.Fixed{At: testNow, Loc: ist},
		publisher: &recordingPublisher{},
		metrics:   newCountingMetrics(),
		payments:  &fakeGateway{},
	}
	f.events = NewEventService(f.store, f.clock, f.publisher, f.metrics)
	f.tickets = NewTicketService(f.store, f.clock, f.payments, f.publisher, f.metrics)
	return f
}

// details returns valid approved-event details for department 1, the day
// after testNow.
func details() input.EventDetails {
	return input.EventDetails{
		Title:        "Robotics Workshop",
		Description:  "Build a line follower",
		Category:     "workshop",
		DepartmentID: 1,
		Date:         "2026-03-02",
		Time:         "14:30",
		Location:     "Lab 3",
		Capacity:     3,
		Price:        decimal.Zero,
	}
}

func (f *fixture) approvedEvent(t *testing.T, capacity int) *entities.Event {
	t.Helper()
	d := details()
	d.Capacity = capacity
	e, err := f.events.CreateApproved(context.Background(), csAdmin, d)
	require.NoError(t, err)
	return e
}

func (f *fixture) suggestion(t *testing.T) *entities.Event {
	t.Helper()
	e, err := f.events.Suggest(context.Background(), student, input.SuggestionDetails{
		Title:       "Open mic night",
		Description: "Poetry and music",
		Category:    "cultural",
	})
	require.NoError(t, err)
	return e
}

func userN(n int) entities.Actor {
	return entities.Actor{UserID: uint(1000 + n), Role: entities.RoleStudent}
}
