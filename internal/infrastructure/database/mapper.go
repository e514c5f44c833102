package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"campustix/internal/domain/entities"
	"campustix/internal/infrastructure/database/queries"
)

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func textToPgtype(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func idToPgtype(id uint) pgtype.Int8 {
	if id == 0 {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: int64(id), Valid: true}
}

// eventToDomain derives the state from the row; a row with only one of
// scheduled_at and location set is refused.
func eventToDomain(e queries.Event) (entities.Event, error) {
	price, err := decimal.NewFromString(e.TicketPrice)
	if err != nil {
		return entities.Event{}, err
	}
	var location string
	if e.Location.Valid {
		location = e.Location.String
	}
	scheduledAt := pgtypeTimestamptzToTime(e.ScheduledAt)
	state, err := entities.DeriveState(scheduledAt, location)
	if err != nil {
		return entities.Event{}, err
	}
	var departmentID uint
	if e.DepartmentID.Valid {
		departmentID = uint(e.DepartmentID.Int64)
	}
	return entities.Event{
		ID:           uint(e.ID),
		Title:        e.Title,
		Description:  e.Description,
		Category:     entities.Category(e.Category),
		DepartmentID: departmentID,
		CreatorID:    uint(e.CreatedBy),
		Capacity:     int(e.AvailableTickets),
		Price:        price,
		ScheduledAt:  scheduledAt,
		Location:     location,
		State:        state,
		CreatedAt:    pgtypeTimestamptzToTime(e.CreatedAt),
		UpdatedAt:    pgtypeTimestamptzToTime(e.UpdatedAt),
	}, nil
}

func ticketToDomain(t queries.Ticket) entities.Ticket {
	return entities.Ticket{
		ID:        uint(t.ID),
		EventID:   uint(t.EventID),
		UserID:    uint(t.UserID),
		Code:      t.Code.Bytes,
		CreatedAt: pgtypeTimestamptzToTime(t.CreatedAt),
	}
}
