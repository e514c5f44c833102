package queries

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const ticketColumns = `id, event_id, user_id, code, created_at`

func scanTicket(row pgx.Row) (Ticket, error) {
	var i Ticket
	err := row.Scan(&i.ID, &i.EventID, &i.UserID, &i.Code, &i.CreatedAt)
	return i, err
}

func collectTickets(rows pgx.Rows, err error) ([]Ticket, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Ticket{}
	for rows.Next() {
		i, err := scanTicket(rows)
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

const createTicket = `-- name: CreateTicket :one
INSERT INTO tickets (event_id, user_id, code, created_at)
VALUES ($1, $2, $3, COALESCE($4::timestamptz, now()))
RETURNING ` + ticketColumns

type CreateTicketParams struct {
	EventID   int64
	UserID    int64
	Code      pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) CreateTicket(ctx context.Context, arg CreateTicketParams) (Ticket, error) {
	return scanTicket(q.db.QueryRow(ctx, createTicket, arg.EventID, arg.UserID, arg.Code, arg.CreatedAt))
}

const getTicketByEventIDAndUserID = `-- name: GetTicketByEventIDAndUserID :one
SELECT ` + ticketColumns + ` FROM tickets WHERE event_id = $1 AND user_id = $2`

type GetTicketByEventIDAndUserIDParams struct {
	EventID int64
	UserID  int64
}

func (q *Queries) GetTicketByEventIDAndUserID(ctx context.Context, arg GetTicketByEventIDAndUserIDParams) (Ticket, error) {
	return scanTicket(q.db.QueryRow(ctx, getTicketByEventIDAndUserID, arg.EventID, arg.UserID))
}

const getTicketsByEventID = `-- name: GetTicketsByEventID :many
SELECT ` + ticketColumns + ` FROM tickets WHERE event_id = $1 ORDER BY id`

func (q *Queries) GetTicketsByEventID(ctx context.Context, eventID int64) ([]Ticket, error) {
	return collectTickets(q.db.Query(ctx, getTicketsByEventID, eventID))
}

const getTicketsByUserID = `-- name: GetTicketsByUserID :many
SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY id`

func (q *Queries) GetTicketsByUserID(ctx context.Context, userID int64) ([]Ticket, error) {
	return collectTickets(q.db.Query(ctx, getTicketsByUserID, userID))
}

const countTicketsByEventID = `-- name: CountTicketsByEventID :one
SELECT count(*) FROM tickets WHERE event_id = $1`

func (q *Queries) CountTicketsByEventID(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	err := q.db.QueryRow(ctx, countTicketsByEventID, eventID).Scan(&count)
	return count, err
}
