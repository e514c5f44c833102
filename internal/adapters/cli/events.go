package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"campustix/internal/domain/entities"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
)

func parseID(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrUsage, s)
	}
	return uint(n), nil
}

type detailFlags struct {
	title, description, category string
	department                   uint
	date, time, location         string
	capacity                     int
	price                        string
}

func bindDetails(fs *pflag.FlagSet) *detailFlags {
	f := &detailFlags{}
	fs.StringVar(&f.title, "title", "", "event title")
	fs.StringVar(&f.description, "description", "", "event description")
	fs.StringVar(&f.category, "category", "", "event category")
	fs.UintVar(&f.department, "department-id", 0, "owning department")
	fs.StringVar(&f.date, "date", "", "date (YYYY-MM-DD)")
	fs.StringVar(&f.time, "time", "", "time (HH:MM)")
	fs.StringVar(&f.location, "location", "", "location")
	fs.IntVar(&f.capacity, "capacity", 0, "available tickets")
	fs.StringVar(&f.price, "price", "0", "ticket price")
	return f
}

func (f *detailFlags) details() (input.EventDetails, error) {
	price, err := decimal.NewFromString(f.price)
	if err != nil {
		return input.EventDetails{}, fmt.Errorf("%w: invalid price %q", ErrUsage, f.price)
	}
	return input.EventDetails{
		Title:        f.title,
		Description:  f.description,
		Category:     f.category,
		DepartmentID: f.department,
		Date:         f.date,
		Time:         f.time,
		Location:     f.location,
		Capacity:     f.capacity,
		Price:        price,
	}, nil
}

func (a *App) runSuggest(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	title := fs.String("title", "", "event title")
	description := fs.String("description", "", "event description")
	category := fs.String("category", "", "event category")
	actor, _, err := parse(fs, args, af, 0)
	if err != nil {
		return err
	}
	e, err := a.events.Suggest(ctx, actor, input.SuggestionDetails{
		Title:       *title,
		Description: *description,
		Category:    *category,
	})
	if err != nil {
		return err
	}
	a.say("info.event_suggested", map[string]any{"ID": e.ID})
	return nil
}

func (a *App) runCreate(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	df := bindDetails(fs)
	actor, _, err := parse(fs, args, af, 0)
	if err != nil {
		return err
	}
	details, err := df.details()
	if err != nil {
		return err
	}
	e, err := a.events.CreateApproved(ctx, actor, details)
	if err != nil {
		return err
	}
	a.say("info.event_created", map[string]any{"ID": e.ID})
	a.printEvent(e)
	return nil
}

func (a *App) runApprove(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	e, err := a.events.Approve(ctx, actor, id)
	if err != nil {
		return err
	}
	if e.Capacity == 0 {
		a.say("info.event_approved_no_tickets", map[string]any{"ID": e.ID})
	} else {
		a.say("info.event_approved", map[string]any{"ID": e.ID})
	}
	a.printEvent(e)
	return nil
}

func (a *App) runReject(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	if err := a.events.Reject(ctx, actor, id); err != nil {
		return err
	}
	a.say("info.event_rejected", map[string]any{"ID": id})
	return nil
}

func (a *App) runEdit(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	df := bindDetails(fs)
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	details, err := df.details()
	if err != nil {
		return err
	}
	e, err := a.events.Edit(ctx, actor, id, details)
	if err != nil {
		return err
	}
	a.say("info.event_updated", map[string]any{"ID": e.ID})
	a.printEvent(e)
	return nil
}

func (a *App) runDelete(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	if err := a.events.Delete(ctx, actor, id); err != nil {
		return err
	}
	a.say("info.event_deleted", map[string]any{"ID": id})
	return nil
}

func (a *App) runShow(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	_, pos, err := parse(fs, args, nil, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	e, err := a.events.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	a.printEvent(e)
	fmt.Fprintln(a.out, e.Description)
	return nil
}

func (a *App) runList(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	state := fs.String("state", "", "suggested or approved")
	category := fs.String("category", "", "category filter")
	search := fs.String("search", "", "title search")
	upcoming := fs.Bool("upcoming", false, "approved events not yet past")
	past := fs.Bool("past", false, "approved events already past")
	if _, _, err := parse(fs, args, nil, 0); err != nil {
		return err
	}

	filter := output.EventFilter{Search: *search}
	switch *state {
	case "":
	case "suggested":
		filter.State = entities.StateSuggested
	case "approved":
		filter.State = entities.StateApproved
	default:
		return fmt.Errorf("%w: unknown state %q", ErrUsage, *state)
	}
	if *category != "" {
		c, ok := entities.ParseCategory(*category)
		if !ok {
			return fmt.Errorf("%w: unknown category %q", ErrUsage, *category)
		}
		filter.Category = c
	}
	now := a.clock.Now()
	switch {
	case *upcoming && *past:
		return fmt.Errorf("%w: --upcoming and --past are exclusive", ErrUsage)
	case *upcoming:
		filter.State, filter.After = entities.StateApproved, now
	case *past:
		filter.State, filter.Before = entities.StateApproved, now
	}

	events, err := a.events.ListEvents(ctx, filter)
	if err != nil {
		return err
	}
	for i := range events {
		a.printEvent(&events[i])
	}
	return nil
}
