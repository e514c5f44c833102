package queries

import "github.com/jackc/pgx/v5/pgtype"

type Event struct {
	ID               int64
	Title            string
	Description      string
	Category         string
	DepartmentID     pgtype.Int8
	CreatedBy        int64
	AvailableTickets int32
	TicketPrice      string
	ScheduledAt      pgtype.Timestamptz
	Location         pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

type Ticket struct {
	ID        int64
	EventID   int64
	UserID    int64
	Code      pgtype.UUID
	CreatedAt pgtype.Timestamptz
}
