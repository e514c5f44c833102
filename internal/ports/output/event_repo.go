package output

import (
	"context"
	"time"

	"campustix/internal/domain/entities"
)

// EventFilter narrows List. Zero values match everything except that
// suggestions and approved events are only both returned when State is 0.
type EventFilter struct {
	State    entities.State
	Category entities.Category
	Search   string    // case-insensitive title match
	After    time.Time // approved events scheduled at or after
	Before   time.Time // approved events scheduled strictly before
}

type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	// FindByID returns domain.ErrEventNotFound when no row exists.
	FindByID(ctx context.Context, id uint) (*entities.Event, error)
	// FindByIDForUpdate locks the event row until the surrounding
	// transaction ends. Outside WithinTx it behaves like FindByID.
	FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error)
	List(ctx context.Context, filter EventFilter) ([]entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	// Delete removes the event with its tickets and memories.
	Delete(ctx context.Context, id uint) error
}
