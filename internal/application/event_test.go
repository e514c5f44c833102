package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
)

func TestSuggest(t *testing.T) {
	f := newFixture()
	e := f.suggestion(t)

	assert.NotZero(t, e.ID)
	assert.True(t, e.IsSuggested())
	assert.Zero(t, e.Capacity)
	assert.True(t, e.ScheduledAt.IsZero())
	assert.Empty(t, e.Location)
	assert.Equal(t, student.UserID, e.CreatorID)
	assert.Equal(t, entities.CategoryCultural, e.Category)
	assert.Equal(t, []string{output.TopicEventCreated}, f.publisher.topics)
}

func TestSuggest_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cases := map[string]struct {
		details input.SuggestionDetails
		want    error
	}{
		"blank title":      {input.SuggestionDetails{Title: "  ", Description: "d", Category: "sports"}, domain.ErrTitleRequired},
		"no description":   {input.SuggestionDetails{Title: "t", Category: "sports"}, domain.ErrDescriptionRequired},
		"no category":      {input.SuggestionDetails{Title: "t", Description: "d"}, domain.ErrCategoryRequired},
		"unknown category": {input.SuggestionDetails{Title: "t", Description: "d", Category: "party"}, domain.ErrUnknownCategory},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.events.Suggest(ctx, student, tc.details)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	_, err := f.events.Suggest(ctx, entities.Actor{}, input.SuggestionDetails{Title: "t", Description: "d", Category: "sports"})
	assert.ErrorIs(t, err, domain.ErrAuthorization)
}

func TestCreateApproved(t *testing.T) {
	f := newFixture()
	e := f.approvedEvent(t, 50)

	assert.True(t, e.IsApproved())
	assert.Equal(t, "Lab 3", e.Location)
	assert.True(t, e.ScheduledAt.Equal(time.Date(2026, 3, 2, 14, 30, 0, 0, ist)), "got %s", e.ScheduledAt)
	assert.Equal(t, 50, e.Capacity)
	assert.Equal(t, uint(1), e.DepartmentID)
	assert.Equal(t, 1, f.metrics.transitions["create"])
}

func TestCreateApproved_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	cases := map[string]struct {
		mutate func(d *input.EventDetails)
		want   error
	}{
		"yesterday":                 {func(d *input.EventDetails) { d.Date = "2026-02-28" }, domain.ErrDateTimeInPast},
		"naive time is local":       {func(d *input.EventDetails) { d.Date, d.Time = "2026-03-01", "09:59" }, domain.ErrDateTimeInPast},
		"zero capacity":             {func(d *input.EventDetails) { d.Capacity = 0 }, domain.ErrInvalidCapacity},
		"negative capacity":         {func(d *input.EventDetails) { d.Capacity = -4 }, domain.ErrInvalidCapacity},
		"capacity beyond int32":     {func(d *input.EventDetails) { d.Capacity = 1<<32 + 5 }, domain.ErrInvalidCapacity},
		"capacity wraps negative":   {func(d *input.EventDetails) { d.Capacity = entities.MaxCapacity + 1 }, domain.ErrInvalidCapacity},
		"negative price":            {func(d *input.EventDetails) { d.Price = decimal.NewFromInt(-1) }, domain.ErrInvalidPrice},
		"price with three decimals": {func(d *input.EventDetails) { d.Price = decimal.RequireFromString("10.005") }, domain.ErrInvalidPrice},
		"price beyond column":       {func(d *input.EventDetails) { d.Price = decimal.NewFromInt(100_000_000) }, domain.ErrInvalidPrice},
		"missing date":              {func(d *input.EventDetails) { d.Date = "" }, domain.ErrDateTimeRequired},
		"bad date":                  {func(d *input.EventDetails) { d.Date = "02/03/2026" }, domain.ErrInvalidDate},
		"bad time":                  {func(d *input.EventDetails) { d.Time = "2pm" }, domain.ErrInvalidTime},
		"missing location":          {func(d *input.EventDetails) { d.Location = " " }, domain.ErrLocationRequired},
		"missing title":             {func(d *input.EventDetails) { d.Title = "" }, domain.ErrTitleRequired},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			d := details()
			tc.mutate(&d)
			_, err := f.events.CreateApproved(ctx, csAdmin, d)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	t.Run("now exactly is accepted", func(t *testing.T) {
		d := details()
		d.Date, d.Time = "2026-03-01", "10:00"
		_, err := f.events.CreateApproved(ctx, csAdmin, d)
		assert.NoError(t, err)
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		d := details()
		d.Capacity = entities.MaxCapacity
		d.Price = decimal.RequireFromString("99999999.99")
		e, err := f.events.CreateApproved(ctx, csAdmin, d)
		require.NoError(t, err)
		assert.Equal(t, entities.MaxCapacity, e.Capacity)
	})

	t.Run("missing department", func(t *testing.T) {
		d := details()
		d.DepartmentID = 0
		_, err := f.events.CreateApproved(ctx, superAdmin, d)
		assert.ErrorIs(t, err, domain.ErrDepartmentRequired)
	})
}

func TestCreateApproved_Authorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.events.CreateApproved(ctx, student, details())
	assert.ErrorIs(t, err, domain.ErrNotEventAdmin)

	_, err = f.events.CreateApproved(ctx, mathsAdmin, details())
	assert.ErrorIs(t, err, domain.ErrNotDepartmentAdmin)
	assert.ErrorIs(t, err, domain.ErrAuthorization)

	_, err = f.events.CreateApproved(ctx, superAdmin, details())
	assert.NoError(t, err)
}

func TestApprove(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.suggestion(t)

	e, err := f.events.Approve(ctx, csAdmin, s.ID)
	require.NoError(t, err)
	assert.True(t, e.IsApproved())
	assert.True(t, e.ScheduledAt.Equal(testNow.Add(entities.ApprovalLeadTime)))
	assert.Equal(t, entities.LocationTBD, e.Location)
	assert.Zero(t, e.Capacity, "capacity is left as suggested")
	assert.Equal(t, csAdmin.DepartmentID, e.DepartmentID, "department admin adopts the suggestion")

	stored, err := f.events.GetEventByID(ctx, s.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved())

	_, err = f.events.Approve(ctx, csAdmin, s.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotSuggested)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	assert.Contains(t, f.publisher.topics, output.TopicEventApproved)
	assert.Equal(t, 1, f.metrics.transitions["approve"])
}

func TestApprove_RejectsApprovedAndUnauthorized(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	approved := f.approvedEvent(t, 5)
	_, err := f.events.Approve(ctx, superAdmin, approved.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	s := f.suggestion(t)
	_, err = f.events.Approve(ctx, student, s.ID)
	assert.ErrorIs(t, err, domain.ErrAuthorization)

	_, err = f.events.Approve(ctx, csAdmin, 999)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	e, err := f.events.Approve(ctx, superAdmin, s.ID)
	require.NoError(t, err)
	assert.Zero(t, e.DepartmentID, "super-admin approval leaves the department unset")
}

func TestReject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	approved := f.approvedEvent(t, 5)
	err := f.events.Reject(ctx, csAdmin, approved.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotSuggested)

	s := f.suggestion(t)
	require.NoError(t, f.events.Reject(ctx, csAdmin, s.ID))

	_, err = f.events.GetEventByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.Contains(t, f.publisher.topics, output.TopicEventRejected)
}

func TestEdit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.approvedEvent(t, 2)

	d := details()
	d.Title = "Robotics Workshop II"
	d.Capacity = 10
	d.Price = decimal.RequireFromString("49.50")
	edited, err := f.events.Edit(ctx, csAdmin, e.ID, d)
	require.NoError(t, err)
	assert.Equal(t, "Robotics Workshop II", edited.Title)
	assert.Equal(t, 10, edited.Capacity)
	assert.True(t, edited.IsApproved())
	assert.False(t, edited.IsFree())

	_, err = f.events.Edit(ctx, mathsAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrNotDepartmentAdmin)

	_, err = f.events.Edit(ctx, student, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrNotEventAdmin)

	moved := d
	moved.DepartmentID = 2
	_, err = f.events.Edit(ctx, csAdmin, e.ID, moved)
	assert.ErrorIs(t, err, domain.ErrNotDepartmentAdmin)

	_, err = f.events.Edit(ctx, superAdmin, e.ID, moved)
	assert.NoError(t, err)
}

func TestEdit_KeepsDepartmentWhenOmitted(t *testing.T) {
	f := newFixture()
	e := f.approvedEvent(t, 2)

	d := details()
	d.DepartmentID = 0
	d.Capacity = 8
	edited, err := f.events.Edit(context.Background(), csAdmin, e.ID, d)
	require.NoError(t, err)
	assert.Equal(t, e.DepartmentID, edited.DepartmentID)
	assert.Equal(t, 8, edited.Capacity)
}

func TestEdit_RevalidatesLikeCreate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.approvedEvent(t, 2)

	d := details()
	d.Date = "2026-02-01"
	_, err := f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrDateTimeInPast)

	d = details()
	d.Capacity = 0
	_, err = f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	d = details()
	d.Capacity = 1<<32 + 5
	_, err = f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	d = details()
	d.Price = decimal.RequireFromString("10.005")
	_, err = f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	stored, err := f.events.GetEventByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Capacity, "failed edits leave the event untouched")
}

func TestEdit_CannotDropBelowIssuedTickets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.approvedEvent(t, 3)
	for i := 0; i < 2; i++ {
		_, err := f.tickets.Book(ctx, userN(i), input.BookRequest{EventID: e.ID})
		require.NoError(t, err)
	}

	d := details()
	d.Capacity = 1
	_, err := f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.ErrorIs(t, err, domain.ErrCannotReduceCapacity)

	d.Capacity = 2
	_, err = f.events.Edit(ctx, csAdmin, e.ID, d)
	assert.NoError(t, err)
}

func TestEdit_SuggestionMustBeApprovedFirst(t *testing.T) {
	f := newFixture()
	s := f.suggestion(t)

	_, err := f.events.Edit(context.Background(), superAdmin, s.ID, details())
	assert.ErrorIs(t, err, domain.ErrEventNotApproved)

	stored, err := f.events.GetEventByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsSuggested())
}

func TestApprovedSuggestionBecomesBookableAfterEdit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.suggestion(t)
	_, err := f.events.Approve(ctx, csAdmin, s.ID)
	require.NoError(t, err)

	_, err = f.tickets.Book(ctx, userN(1), input.BookRequest{EventID: s.ID})
	assert.ErrorIs(t, err, domain.ErrSoldOut, "approved with capacity 0 is sold out")

	_, err = f.events.Edit(ctx, csAdmin, s.ID, details())
	require.NoError(t, err)

	_, err = f.tickets.Book(ctx, userN(1), input.BookRequest{EventID: s.ID})
	assert.NoError(t, err)
}

func TestDelete_CascadesTickets(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	e := f.approvedEvent(t, 3)
	_, err := f.tickets.Book(ctx, userN(1), input.BookRequest{EventID: e.ID})
	require.NoError(t, err)

	err = f.events.Delete(ctx, mathsAdmin, e.ID)
	assert.ErrorIs(t, err, domain.ErrNotDepartmentAdmin)

	require.NoError(t, f.events.Delete(ctx, csAdmin, e.ID))

	_, err = f.events.GetEventByID(ctx, e.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	_, err = f.tickets.TicketFor(ctx, e.ID, userN(1).UserID)
	assert.ErrorIs(t, err, domain.ErrTicketNotFound)
	mine, err := f.tickets.ListForUser(ctx, userN(1).UserID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDelete_AnyStateBySuperAdmin(t *testing.T) {
	f := newFixture()
	s := f.suggestion(t)
	require.NoError(t, f.events.Delete(context.Background(), superAdmin, s.ID))

	err := f.events.Delete(context.Background(), superAdmin, s.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestListEvents(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.suggestion(t)
	workshop := f.approvedEvent(t, 5)
	d := details()
	d.Title, d.Category, d.Date = "Football final", "sports", "2026-04-10"
	_, err := f.events.CreateApproved(ctx, csAdmin, d)
	require.NoError(t, err)

	all, err := f.events.ListEvents(ctx, output.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	suggested, err := f.events.ListEvents(ctx, output.EventFilter{State: entities.StateSuggested})
	require.NoError(t, err)
	assert.Len(t, suggested, 1)

	search, err := f.events.ListEvents(ctx, output.EventFilter{Search: "ROBOT"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, workshop.ID, search[0].ID)

	sports, err := f.events.ListEvents(ctx, output.EventFilter{Category: entities.CategorySports})
	require.NoError(t, err)
	require.Len(t, sports, 1)

	before, err := f.events.ListEvents(ctx, output.EventFilter{State: entities.StateApproved, Before: testNow.AddDate(0, 0, 7)})
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, workshop.ID, before[0].ID)
}
