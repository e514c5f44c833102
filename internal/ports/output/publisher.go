package output

import (
	"context"
	"time"
)

// Routing keys for domain notifications.
const (
	TopicEventCreated  = "event.created"
	TopicEventApproved = "event.approved"
	TopicEventRejected = "event.rejected"
	TopicEventDeleted  = "event.deleted"
	TopicTicketIssued  = "ticket.issued"
)

// EventMessage is published on the event.* topics.
type EventMessage struct {
	EventID      uint      `json:"event_id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	DepartmentID uint      `json:"department_id,omitempty"`
	ScheduledAt  time.Time `json:"scheduled_at,omitempty"`
	Location     string    `json:"location,omitempty"`
	Capacity     int       `json:"capacity"`
	ActorID      uint      `json:"actor_id"`
}

// TicketIssuedMessage is published once a booking has committed.
type TicketIssuedMessage struct {
	TicketID  uint   `json:"ticket_id"`
	EventID   uint   `json:"event_id"`
	UserID    uint   `json:"user_id"`
	Code      string `json:"code"`
	Remaining int    `json:"remaining"`
}

// Publisher delivers notifications after commit. Failures never undo the
// operation that produced the message.
type Publisher interface {
	Publish(ctx context.Context, topic string, message any) error
}
