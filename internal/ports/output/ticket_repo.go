package output

import (
	"context"

	"campustix/internal/domain/entities"
)

type TicketRepository interface {
	// Create returns domain.ErrAlreadyBooked when (event, user) already holds
	// a ticket and domain.ErrEventNotFound when the event is gone.
	Create(ctx context.Context, ticket *entities.Ticket) error
	// FindByEventIDAndUserID returns domain.ErrTicketNotFound when absent.
	FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Ticket, error)
	FindByEventID(ctx context.Context, eventID uint) ([]entities.Ticket, error)
	FindByUserID(ctx context.Context, userID uint) ([]entities.Ticket, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}
