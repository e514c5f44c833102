package entities

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a user's confirmed reservation against an event's capacity.
// Tickets are never updated.
type Ticket struct {
	ID        uint
	EventID   uint
	UserID    uint
	Code      uuid.UUID
	CreatedAt time.Time
}
