package cli

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"campustix/internal/ports/input"
)

func (a *App) runBook(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	method := fs.String("payment-method", "", "payment method for paid events")
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	t, err := a.tickets.Book(ctx, actor, input.BookRequest{EventID: id, PaymentMethod: *method})
	if err != nil {
		return err
	}
	a.say("info.ticket_booked", map[string]any{"Code": t.Code.String()})
	a.printTicket(t)
	return nil
}

func (a *App) runTicket(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	user := fs.Uint("user", 0, "ticket holder (defaults to --actor)")
	actor, pos, err := parse(fs, args, af, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	holder := *user
	if holder == 0 {
		holder = actor.UserID
	}
	t, err := a.tickets.TicketFor(ctx, id, holder)
	if err != nil {
		return err
	}
	a.printTicket(t)
	return nil
}

func (a *App) runRemaining(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	_, pos, err := parse(fs, args, nil, 1)
	if err != nil {
		return err
	}
	id, err := parseID(pos[0])
	if err != nil {
		return err
	}
	left, err := a.tickets.TicketsRemaining(ctx, id)
	if err != nil {
		return err
	}
	a.say("info.tickets_remaining", map[string]any{"Remaining": left})
	return nil
}

// runTickets lists an event's tickets for its admins, or the actor's own
// tickets without --event.
func (a *App) runTickets(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	af := bindActor(fs)
	event := fs.Uint("event", 0, "event id")
	actor, _, err := parse(fs, args, af, 0)
	if err != nil {
		return err
	}
	if *event != 0 {
		list, err := a.tickets.ListForEvent(ctx, actor, *event)
		if err != nil {
			return err
		}
		for i := range list {
			a.printTicket(&list[i])
		}
		return nil
	}
	list, err := a.tickets.ListForUser(ctx, actor.UserID)
	if err != nil {
		return err
	}
	for i := range list {
		a.printTicket(&list[i])
	}
	return nil
}

func (a *App) runMigrate(_ context.Context, fs *pflag.FlagSet, args []string) error {
	down := fs.Bool("down", false, "revert all migrations")
	if _, _, err := parse(fs, args, nil, 0); err != nil {
		return err
	}
	if a.hooks.Migrate == nil {
		return fmt.Errorf("migrate: not available")
	}
	return a.hooks.Migrate(*down)
}

func (a *App) runServeMetrics(ctx context.Context, fs *pflag.FlagSet, args []string) error {
	addr := fs.String("addr", a.hooks.MetricsAddr, "listen address")
	if _, _, err := parse(fs, args, nil, 0); err != nil {
		return err
	}
	if a.hooks.ServeMetrics == nil {
		return fmt.Errorf("serve-metrics: not available")
	}
	return a.hooks.ServeMetrics(ctx, *addr)
}
