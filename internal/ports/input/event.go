package input

import (
	"context"

	"github.com/shopspring/decimal"

	"campustix/internal/domain/entities"
	"campustix/internal/ports/output"
)

// SuggestionDetails is what a student provides when proposing an event.
type SuggestionDetails struct {
	Title       string
	Description string
	Category    string
}

// EventDetails is the full form of an approved event. Date and Time are
// combined into one instant in the configured location.
type EventDetails struct {
	Title        string
	Description  string
	Category     string
	DepartmentID uint
	Date         string // 2006-01-02
	Time         string // 15:04
	Location     string
	Capacity     int
	Price        decimal.Decimal
}

type EventUseCase interface {
	Suggest(ctx context.Context, actor entities.Actor, details SuggestionDetails) (*entities.Event, error)
	CreateApproved(ctx context.Context, actor entities.Actor, details EventDetails) (*entities.Event, error)
	Approve(ctx context.Context, actor entities.Actor, eventID uint) (*entities.Event, error)
	Reject(ctx context.Context, actor entities.Actor, eventID uint) error
	Edit(ctx context.Context, actor entities.Actor, eventID uint, details EventDetails) (*entities.Event, error)
	Delete(ctx context.Context, actor entities.Actor, eventID uint) error
	GetEventByID(ctx context.Context, id uint) (*entities.Event, error)
	ListEvents(ctx context.Context, filter output.EventFilter) ([]entities.Event, error)
}
