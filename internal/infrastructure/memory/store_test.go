package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/ports/output"
)

func approved(title string, at time.Time) *entities.Event {
	return &entities.Event{
		Title:       title,
		Category:    entities.CategoryOther,
		State:       entities.StateApproved,
		ScheduledAt: at,
		Location:    "Hall",
		Capacity:    5,
	}
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := approved("Hackathon", time.Now())
	require.NoError(t, s.Events().Create(ctx, e))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(tx output.Store) error {
		require.NoError(t, tx.Tickets().Create(ctx, &entities.Ticket{EventID: e.ID, UserID: 1, Code: uuid.New()}))
		require.NoError(t, tx.Events().Delete(ctx, e.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.Events().FindByID(ctx, e.ID)
	assert.NoError(t, err)
	n, err := s.Tickets().CountByEventID(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithinTx_Commits(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := approved("Hackathon", time.Now())
	require.NoError(t, s.Events().Create(ctx, e))

	err := s.WithinTx(ctx, func(tx output.Store) error {
		return tx.WithinTx(ctx, func(inner output.Store) error {
			return inner.Tickets().Create(ctx, &entities.Ticket{EventID: e.ID, UserID: 1})
		})
	})
	require.NoError(t, err)

	n, err := s.Tickets().CountByEventID(ctx, e.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestWithinTx_CancelledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	e := approved("Hackathon", time.Now())
	require.NoError(t, s.Events().Create(ctx, e))

	err := s.WithinTx(ctx, func(tx output.Store) error {
		cancel()
		return tx.Tickets().Create(ctx, &entities.Ticket{EventID: e.ID, UserID: 1})
	})
	assert.ErrorIs(t, err, context.Canceled)

	n, _ := s.Tickets().CountByEventID(context.Background(), e.ID)
	assert.Zero(t, n)
}

func TestTickets_Constraints(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := approved("Hackathon", time.Now())
	require.NoError(t, s.Events().Create(ctx, e))

	require.NoError(t, s.Tickets().Create(ctx, &entities.Ticket{EventID: e.ID, UserID: 1}))
	assert.ErrorIs(t, s.Tickets().Create(ctx, &entities.Ticket{EventID: e.ID, UserID: 1}), domain.ErrAlreadyBooked)
	assert.ErrorIs(t, s.Tickets().Create(ctx, &entities.Ticket{EventID: 99, UserID: 1}), domain.ErrEventNotFound)

	require.NoError(t, s.Events().Delete(ctx, e.ID))
	mine, err := s.Tickets().FindByUserID(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestEvents_RejectInconsistentWrites(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	e := &entities.Event{Title: "x", State: entities.StateApproved, Location: "Hall"}
	assert.ErrorIs(t, s.Events().Create(ctx, e), domain.ErrInconsistentState)

	ok := approved("ok", time.Now())
	require.NoError(t, s.Events().Create(ctx, ok))
	ok.Location = ""
	assert.ErrorIs(t, s.Events().Update(ctx, ok), domain.ErrInconsistentState)
}

func TestEvents_ListOrderAndFilters(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	late := approved("Late", base.Add(48*time.Hour))
	early := approved("Early", base.Add(time.Hour))
	suggestion := &entities.Event{Title: "Idea", Category: entities.CategorySports, State: entities.StateSuggested}
	for _, e := range []*entities.Event{late, early, suggestion} {
		require.NoError(t, s.Events().Create(ctx, e))
	}

	all, err := s.Events().List(ctx, output.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{suggestion.ID, early.ID, late.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	upcoming, err := s.Events().List(ctx, output.EventFilter{After: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, late.ID, upcoming[0].ID)

	sports, err := s.Events().List(ctx, output.EventFilter{Category: entities.CategorySports})
	require.NoError(t, err)
	require.Len(t, sports, 1)
	assert.Equal(t, suggestion.ID, sports[0].ID)
}
