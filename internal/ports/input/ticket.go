package input

import (
	"context"

	"campustix/internal/domain/entities"
)

type BookRequest struct {
	EventID uint
	// PaymentMethod is forwarded to the payment gateway for paid events.
	PaymentMethod string
}

type TicketUseCase interface {
	Book(ctx context.Context, actor entities.Actor, req BookRequest) (*entities.Ticket, error)
	TicketFor(ctx context.Context, eventID, userID uint) (*entities.Ticket, error)
	TicketsRemaining(ctx context.Context, eventID uint) (int, error)
	ListForEvent(ctx context.Context, actor entities.Actor, eventID uint) ([]entities.Ticket, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Ticket, error)
}
