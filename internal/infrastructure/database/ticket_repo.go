package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/infrastructure/database/queries"
	"campustix/internal/ports/output"
)

var _ output.TicketRepository = (*TicketRepository)(nil)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TicketRepository implements output.TicketRepository using pgx.
type TicketRepository struct {
	q *queries.Queries
}

func NewTicketRepository(q *queries.Queries) *TicketRepository {
	return &TicketRepository{q: q}
}

func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	row, err := r.q.CreateTicket(ctx, queries.CreateTicketParams{
		EventID:   int64(ticket.EventID),
		UserID:    int64(ticket.UserID),
		Code:      pgtype.UUID{Bytes: ticket.Code, Valid: true},
		CreatedAt: timeToPgtype(ticket.CreatedAt),
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if pgErr.ConstraintName == "tickets_event_user_key" {
				return domain.ErrAlreadyBooked
			}
		case pgForeignKeyViolation:
			return domain.ErrEventNotFound
		}
	}
	if err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	ticket.ID = uint(row.ID)
	ticket.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	return nil
}

func (r *TicketRepository) FindByEventIDAndUserID(ctx context.Context, eventID, userID uint) (*entities.Ticket, error) {
	row, err := r.q.GetTicketByEventIDAndUserID(ctx, queries.GetTicketByEventIDAndUserIDParams{
		EventID: int64(eventID),
		UserID:  int64(userID),
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTicketNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get ticket by event id and user id: %w", err)
	}
	t := ticketToDomain(row)
	return &t, nil
}

func (r *TicketRepository) FindByEventID(ctx context.Context, eventID uint) ([]entities.Ticket, error) {
	rows, err := r.q.GetTicketsByEventID(ctx, int64(eventID))
	if err != nil {
		return nil, fmt.Errorf("get tickets by event id: %w", err)
	}
	return ticketsToDomain(rows), nil
}

func (r *TicketRepository) FindByUserID(ctx context.Context, userID uint) ([]entities.Ticket, error) {
	rows, err := r.q.GetTicketsByUserID(ctx, int64(userID))
	if err != nil {
		return nil, fmt.Errorf("get tickets by user id: %w", err)
	}
	return ticketsToDomain(rows), nil
}

func (r *TicketRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.q.CountTicketsByEventID(ctx, int64(eventID))
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	return count, nil
}

func ticketsToDomain(rows []queries.Ticket) []entities.Ticket {
	out := make([]entities.Ticket, len(rows))
	for i := range rows {
		out[i] = ticketToDomain(rows[i])
	}
	return out
}
