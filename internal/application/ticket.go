package application

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/domain/policy"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
)

var _ input.TicketUseCase = (*TicketService)(nil)

// Booking outcomes reported to Metrics.
const (
	OutcomeIssued       = "issued"
	OutcomeNotBookable  = "not_bookable"
	OutcomeDuplicate    = "duplicate"
	OutcomeSoldOut      = "sold_out"
	OutcomePaymentError = "payment_failed"
	OutcomeError        = "error"
)

// TicketService allocates tickets against event capacity.
type TicketService struct {
	store     output.Store
	clock     output.Clock
	payments  output.PaymentGateway
	publisher output.Publisher
	metrics   output.Metrics
}

func NewTicketService(
	store output.Store,
	clock output.Clock,
	payments output.PaymentGateway,
	publisher output.Publisher,
	metrics output.Metrics,
) *TicketService {
	return &TicketService{
		store:     store,
		clock:     clock,
		payments:  payments,
		publisher: publisher,
		metrics:   metrics,
	}
}

// Book issues one ticket for the actor. The event row stays locked from the
// state check to the insert, so concurrent bookings of one event run one at
// a time and the live ticket count cannot go stale.
func (s *TicketService) Book(ctx context.Context, actor entities.Actor, req input.BookRequest) (*entities.Ticket, error) {
	if err := policy.CanSuggest(actor); err != nil {
		return nil, err
	}
	var (
		ticket    *entities.Ticket
		remaining int
	)
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		event, err := tx.Events().FindByIDForUpdate(ctx, req.EventID)
		if err != nil {
			return err
		}
		if !event.IsApproved() {
			return domain.ErrEventNotBookable
		}
		_, err = tx.Tickets().FindByEventIDAndUserID(ctx, event.ID, actor.UserID)
		switch {
		case err == nil:
			return domain.ErrAlreadyBooked
		case !errors.Is(err, domain.ErrTicketNotFound):
			return err
		}
		issued, err := tx.Tickets().CountByEventID(ctx, event.ID)
		if err != nil {
			return err
		}
		left := entities.Remaining(event.Capacity, issued)
		if left <= 0 {
			return domain.ErrSoldOut
		}
		code := uuid.New()
		if !event.IsFree() {
			if err := s.charge(ctx, event, actor, req.PaymentMethod, code); err != nil {
				return err
			}
		}
		t := &entities.Ticket{
			EventID:   event.ID,
			UserID:    actor.UserID,
			Code:      code,
			CreatedAt: s.clock.Now(),
		}
		if err := tx.Tickets().Create(ctx, t); err != nil {
			return err
		}
		ticket = t
		remaining = left - 1
		return nil
	})
	s.countBooking(err)
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		msg := output.TicketIssuedMessage{
			TicketID:  ticket.ID,
			EventID:   ticket.EventID,
			UserID:    ticket.UserID,
			Code:      ticket.Code.String(),
			Remaining: remaining,
		}
		if err := s.publisher.Publish(ctx, output.TopicTicketIssued, msg); err != nil {
			log.Printf("⚠️ Publication du billet %d échouée: %v", ticket.ID, err)
		}
	}
	return ticket, nil
}

func (s *TicketService) charge(ctx context.Context, event *entities.Event, actor entities.Actor, method string, code uuid.UUID) error {
	if s.payments == nil {
		return fmt.Errorf("book event %d: no payment gateway configured", event.ID)
	}
	_, err := s.payments.Charge(ctx, output.PaymentRequest{
		EventID:        event.ID,
		UserID:         actor.UserID,
		Amount:         event.Price,
		PaymentMethod:  method,
		IdempotencyKey: code.String(),
		Description:    event.Title,
	})
	if err == nil {
		return nil
	}
	if domain.KindOf(err) == domain.KindPayment {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
}

func (s *TicketService) countBooking(err error) {
	if s.metrics == nil {
		return
	}
	outcome := OutcomeIssued
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotBookable):
		outcome = OutcomeNotBookable
	case errors.Is(err, domain.ErrDuplicateBooking):
		outcome = OutcomeDuplicate
	case errors.Is(err, domain.ErrSoldOutKind):
		outcome = OutcomeSoldOut
	case errors.Is(err, domain.ErrPayment):
		outcome = OutcomePaymentError
	default:
		outcome = OutcomeError
	}
	s.metrics.BookingAttempt(outcome)
}

func (s *TicketService) TicketFor(ctx context.Context, eventID, userID uint) (*entities.Ticket, error) {
	return s.store.Tickets().FindByEventIDAndUserID(ctx, eventID, userID)
}

func (s *TicketService) TicketsRemaining(ctx context.Context, eventID uint) (int, error) {
	event, err := s.store.Events().FindByID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	issued, err := s.store.Tickets().CountByEventID(ctx, eventID)
	if err != nil {
		return 0, err
	}
	return entities.Remaining(event.Capacity, issued), nil
}

// ListForEvent is reserved to admins allowed to manage the event.
func (s *TicketService) ListForEvent(ctx context.Context, actor entities.Actor, eventID uint) ([]entities.Ticket, error) {
	event, err := s.store.Events().FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanEdit(actor, event); err != nil {
		return nil, err
	}
	return s.store.Tickets().FindByEventID(ctx, eventID)
}

func (s *TicketService) ListForUser(ctx context.Context, userID uint) ([]entities.Ticket, error) {
	return s.store.Tickets().FindByUserID(ctx, userID)
}
