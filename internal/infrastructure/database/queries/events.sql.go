package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const eventColumns = `id, title, description, category, department_id, created_by,
	available_tickets, ticket_price::text, scheduled_at, location, created_at, updated_at`

func scanEvent(row pgx.Row) (Event, error) {
	var i Event
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Description,
		&i.Category,
		&i.DepartmentID,
		&i.CreatedBy,
		&i.AvailableTickets,
		&i.TicketPrice,
		&i.ScheduledAt,
		&i.Location,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createEvent = `-- name: CreateEvent :one
INSERT INTO events (
	title, description, category, department_id, created_by,
	available_tickets, ticket_price, scheduled_at, location
) VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9)
RETURNING ` + eventColumns

type CreateEventParams struct {
	Title            string
	Description      string
	Category         string
	DepartmentID     pgtype.Int8
	CreatedBy        int64
	AvailableTickets int32
	TicketPrice      string
	ScheduledAt      pgtype.Timestamptz
	Location         pgtype.Text
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRow(ctx, createEvent,
		arg.Title,
		arg.Description,
		arg.Category,
		arg.DepartmentID,
		arg.CreatedBy,
		arg.AvailableTickets,
		arg.TicketPrice,
		arg.ScheduledAt,
		arg.Location,
	)
	return scanEvent(row)
}

const getEventByID = `-- name: GetEventByID :one
SELECT ` + eventColumns + ` FROM events WHERE id = $1`

func (q *Queries) GetEventByID(ctx context.Context, id int64) (Event, error) {
	return scanEvent(q.db.QueryRow(ctx, getEventByID, id))
}

const getEventByIDForUpdate = `-- name: GetEventByIDForUpdate :one
SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`

func (q *Queries) GetEventByIDForUpdate(ctx context.Context, id int64) (Event, error) {
	return scanEvent(q.db.QueryRow(ctx, getEventByIDForUpdate, id))
}

const listEvents = `-- name: ListEvents :many
SELECT ` + eventColumns + ` FROM events
WHERE ($1::int = 0
		OR ($1::int = 1 AND scheduled_at IS NULL)
		OR ($1::int = 2 AND scheduled_at IS NOT NULL))
	AND ($2::text = '' OR category = $2::text)
	AND ($3::text = '' OR title ILIKE '%' || $3::text || '%')
	AND ($4::timestamptz IS NULL OR scheduled_at >= $4::timestamptz)
	AND ($5::timestamptz IS NULL OR scheduled_at < $5::timestamptz)
ORDER BY scheduled_at ASC NULLS FIRST, id ASC`

type ListEventsParams struct {
	State    int32
	Category string
	Search   string
	After    pgtype.Timestamptz
	Before   pgtype.Timestamptz
}

func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.Query(ctx, listEvents, arg.State, arg.Category, arg.Search, arg.After, arg.Before)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Event{}
	for rows.Next() {
		i, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateEvent = `-- name: UpdateEvent :execrows
UPDATE events SET
	title = $2,
	description = $3,
	category = $4,
	department_id = $5,
	available_tickets = $6,
	ticket_price = $7::numeric,
	scheduled_at = $8,
	location = $9,
	updated_at = now()
WHERE id = $1`

type UpdateEventParams struct {
	ID               int64
	Title            string
	Description      string
	Category         string
	DepartmentID     pgtype.Int8
	AvailableTickets int32
	TicketPrice      string
	ScheduledAt      pgtype.Timestamptz
	Location         pgtype.Text
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateEvent,
		arg.ID,
		arg.Title,
		arg.Description,
		arg.Category,
		arg.DepartmentID,
		arg.AvailableTickets,
		arg.TicketPrice,
		arg.ScheduledAt,
		arg.Location,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteEvent = `-- name: DeleteEvent :execrows
DELETE FROM events WHERE id = $1`

func (q *Queries) DeleteEvent(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteEvent, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
