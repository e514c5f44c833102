package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/infrastructure/database/queries"
	"campustix/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	q *queries.Queries
}

func NewEventRepository(q *queries.Queries) *EventRepository {
	return &EventRepository{q: q}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	row, err := r.q.CreateEvent(ctx, queries.CreateEventParams{
		Title:            event.Title,
		Description:      event.Description,
		Category:         string(event.Category),
		DepartmentID:     idToPgtype(event.DepartmentID),
		CreatedBy:        int64(event.CreatorID),
		AvailableTickets: int32(event.Capacity),
		TicketPrice:      event.Price.String(),
		ScheduledAt:      timeToPgtype(event.ScheduledAt),
		Location:         textToPgtype(event.Location),
	})
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = uint(row.ID)
	event.CreatedAt = pgtypeTimestamptzToTime(row.CreatedAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(row.UpdatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.Event, error) {
	row, err := r.q.GetEventByID(ctx, int64(id))
	return r.found(row, err, "get event by id")
}

func (r *EventRepository) FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error) {
	row, err := r.q.GetEventByIDForUpdate(ctx, int64(id))
	return r.found(row, err, "lock event")
}

func (r *EventRepository) found(row queries.Event, err error, op string) (*entities.Event, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e, err := eventToDomain(row)
	if err != nil {
		return nil, fmt.Errorf("%s: event %d: %w", op, row.ID, err)
	}
	return &e, nil
}

func (r *EventRepository) List(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	rows, err := r.q.ListEvents(ctx, queries.ListEventsParams{
		State:    int32(filter.State),
		Category: string(filter.Category),
		Search:   filter.Search,
		After:    timeToPgtype(filter.After),
		Before:   timeToPgtype(filter.Before),
	})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := make([]entities.Event, 0, len(rows))
	for i := range rows {
		e, err := eventToDomain(rows[i])
		if err != nil {
			return nil, fmt.Errorf("list events: event %d: %w", rows[i].ID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	n, err := r.q.UpdateEvent(ctx, queries.UpdateEventParams{
		ID:               int64(event.ID),
		Title:            event.Title,
		Description:      event.Description,
		Category:         string(event.Category),
		DepartmentID:     idToPgtype(event.DepartmentID),
		AvailableTickets: int32(event.Capacity),
		TicketPrice:      event.Price.String(),
		ScheduledAt:      timeToPgtype(event.ScheduledAt),
		Location:         textToPgtype(event.Location),
	})
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for tickets and memories.
func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	n, err := r.q.DeleteEvent(ctx, int64(id))
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if n == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

