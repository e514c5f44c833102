package application

import (
	"context"
	"log"
	"strings"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/domain/policy"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
	"campustix/pkg/schedule"
)

var _ input.EventUseCase = (*EventService)(nil)

// EventService owns the event lifecycle: suggestion, approval, rejection,
// edits and deletion.
type EventService struct {
	store     output.Store
	clock     output.Clock
	publisher output.Publisher
	metrics   output.Metrics
}

func NewEventService(
	store output.Store,
	clock output.Clock,
	publisher output.Publisher,
	metrics output.Metrics,
) *EventService {
	return &EventService{
		store:     store,
		clock:     clock,
		publisher: publisher,
		metrics:   metrics,
	}
}

func (s *EventService) Suggest(ctx context.Context, actor entities.Actor, details input.SuggestionDetails) (*entities.Event, error) {
	if err := policy.CanSuggest(actor); err != nil {
		return nil, err
	}
	title, description, category, err := validateText(details.Title, details.Description, details.Category)
	if err != nil {
		return nil, err
	}
	event := &entities.Event{
		Title:       title,
		Description: description,
		Category:    category,
		CreatorID:   actor.UserID,
		Capacity:    0,
		State:       entities.StateSuggested,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Events().Create(ctx, event); err != nil {
		return nil, err
	}
	s.record(ctx, "suggest", output.TopicEventCreated, actor, event)
	return event, nil
}

func (s *EventService) CreateApproved(ctx context.Context, actor entities.Actor, details input.EventDetails) (*entities.Event, error) {
	if err := policy.CanCreate(actor, details.DepartmentID); err != nil {
		return nil, err
	}
	event := &entities.Event{
		CreatorID: actor.UserID,
		State:     entities.StateApproved,
	}
	if err := s.applyDetails(event, details); err != nil {
		return nil, err
	}
	if err := s.store.Events().Create(ctx, event); err != nil {
		return nil, err
	}
	s.record(ctx, "create", output.TopicEventCreated, actor, event)
	return event, nil
}

func (s *EventService) Approve(ctx context.Context, actor entities.Actor, eventID uint) (*entities.Event, error) {
	var event *entities.Event
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		e, err := tx.Events().FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := policy.CanReview(actor, e); err != nil {
			return err
		}
		if err := e.Approve(s.clock.Now()); err != nil {
			return err
		}
		if e.DepartmentID == 0 && actor.Role == entities.RoleTeacher {
			e.DepartmentID = actor.DepartmentID
		}
		if err := e.Validate(); err != nil {
			return err
		}
		if err := tx.Events().Update(ctx, e); err != nil {
			return err
		}
		event = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	if event.Capacity == 0 {
		log.Printf("⚠️ Événement %d approuvé sans billets disponibles", event.ID)
	}
	s.record(ctx, "approve", output.TopicEventApproved, actor, event)
	return event, nil
}

func (s *EventService) Reject(ctx context.Context, actor entities.Actor, eventID uint) error {
	var event *entities.Event
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		e, err := tx.Events().FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := policy.CanReview(actor, e); err != nil {
			return err
		}
		if !e.IsSuggested() {
			return domain.ErrEventNotSuggested
		}
		event = e
		return tx.Events().Delete(ctx, e.ID)
	})
	if err != nil {
		return err
	}
	s.record(ctx, "reject", output.TopicEventRejected, actor, event)
	return nil
}

// Edit replaces the details of an approved event. A suggestion has to be
// approved before it can be edited; editing never changes the state. A zero
// DepartmentID keeps the event's department.
func (s *EventService) Edit(ctx context.Context, actor entities.Actor, eventID uint, details input.EventDetails) (*entities.Event, error) {
	var event *entities.Event
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		e, err := tx.Events().FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := policy.CanEdit(actor, e); err != nil {
			return err
		}
		if !e.IsApproved() {
			return domain.ErrEventNotApproved
		}
		if details.DepartmentID == 0 {
			details.DepartmentID = e.DepartmentID
		}
		if !actor.IsSuperAdmin() && details.DepartmentID != e.DepartmentID {
			return domain.ErrNotDepartmentAdmin
		}
		if err := s.applyDetails(e, details); err != nil {
			return err
		}
		issued, err := tx.Tickets().CountByEventID(ctx, e.ID)
		if err != nil {
			return err
		}
		if int64(e.Capacity) < issued {
			return domain.ErrCannotReduceCapacity
		}
		if err := tx.Events().Update(ctx, e); err != nil {
			return err
		}
		event = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.Transition("edit")
	}
	return event, nil
}

func (s *EventService) Delete(ctx context.Context, actor entities.Actor, eventID uint) error {
	var event *entities.Event
	err := s.store.WithinTx(ctx, func(tx output.Store) error {
		e, err := tx.Events().FindByIDForUpdate(ctx, eventID)
		if err != nil {
			return err
		}
		if err := policy.CanEdit(actor, e); err != nil {
			return err
		}
		event = e
		return tx.Events().Delete(ctx, e.ID)
	})
	if err != nil {
		return err
	}
	s.record(ctx, "delete", output.TopicEventDeleted, actor, event)
	return nil
}

func (s *EventService) GetEventByID(ctx context.Context, id uint) (*entities.Event, error) {
	return s.store.Events().FindByID(ctx, id)
}

func (s *EventService) ListEvents(ctx context.Context, filter output.EventFilter) ([]entities.Event, error) {
	return s.store.Events().List(ctx, filter)
}

// applyDetails validates details the same way for creation and edits and
// copies them onto e.
func (s *EventService) applyDetails(e *entities.Event, details input.EventDetails) error {
	title, description, category, err := validateText(details.Title, details.Description, details.Category)
	if err != nil {
		return err
	}
	if details.DepartmentID == 0 {
		return domain.ErrDepartmentRequired
	}
	location := strings.TrimSpace(details.Location)
	if location == "" {
		return domain.ErrLocationRequired
	}
	scheduledAt, err := schedule.CombineFuture(details.Date, details.Time, s.clock.Location(), s.clock.Now())
	if err != nil {
		return err
	}
	if details.Capacity <= 0 || details.Capacity > entities.MaxCapacity {
		return domain.ErrInvalidCapacity
	}
	if !entities.ValidPrice(details.Price) {
		return domain.ErrInvalidPrice
	}
	e.Title = title
	e.Description = description
	e.Category = category
	e.DepartmentID = details.DepartmentID
	e.ScheduledAt = scheduledAt
	e.Location = location
	e.Capacity = details.Capacity
	e.Price = details.Price
	return e.Validate()
}

func validateText(title, description, category string) (string, string, entities.Category, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "", "", domain.ErrTitleRequired
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return "", "", "", domain.ErrDescriptionRequired
	}
	if strings.TrimSpace(category) == "" {
		return "", "", "", domain.ErrCategoryRequired
	}
	c, ok := entities.ParseCategory(category)
	if !ok {
		return "", "", "", domain.ErrUnknownCategory
	}
	return title, description, c, nil
}

// record counts the transition and publishes it once committed.
func (s *EventService) record(ctx context.Context, transition, topic string, actor entities.Actor, e *entities.Event) {
	if s.metrics != nil {
		s.metrics.Transition(transition)
	}
	if s.publisher == nil {
		return
	}
	msg := output.EventMessage{
		EventID:      e.ID,
		Title:        e.Title,
		Category:     string(e.Category),
		DepartmentID: e.DepartmentID,
		ScheduledAt:  e.ScheduledAt,
		Location:     e.Location,
		Capacity:     e.Capacity,
		ActorID:      actor.UserID,
	}
	if err := s.publisher.Publish(ctx, topic, msg); err != nil {
		log.Printf("⚠️ Publication %s pour l'événement %d échouée: %v", topic, e.ID, err)
	}
}
