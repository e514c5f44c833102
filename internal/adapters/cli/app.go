// Package cli is a command-line adapter over the event and ticket use
// cases. The acting identity comes from flags and is trusted as given.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/ports/input"
	"campustix/internal/ports/output"
)

// Messages renders user-facing text.
type Messages interface {
	output.T
	Error(locale string, err error) string
}

// Hooks are the commands that need infrastructure beyond the use cases.
type Hooks struct {
	Migrate      func(down bool) error
	ServeMetrics func(ctx context.Context, addr string) error
	MetricsAddr  string
}

type App struct {
	events   input.EventUseCase
	tickets  input.TicketUseCase
	messages Messages
	clock    output.Clock
	out      io.Writer
	hooks    Hooks
	locale   string
	commands map[string]command
}

type command struct {
	usage string
	run   func(ctx context.Context, fs *pflag.FlagSet, args []string) error
}

// ErrUsage is returned for unknown commands and bad flags.
var ErrUsage = errors.New("usage")

func New(events input.EventUseCase, tickets input.TicketUseCase, messages Messages, clock output.Clock, out io.Writer, hooks Hooks, locale string) *App {
	a := &App{
		events:   events,
		tickets:  tickets,
		messages: messages,
		clock:    clock,
		out:      out,
		hooks:    hooks,
		locale:   locale,
	}
	a.commands = map[string]command{
		"suggest":       {"suggest --title T --description D --category C", a.runSuggest},
		"create":        {"create --title T --description D --category C --department-id N --date YYYY-MM-DD --time HH:MM --location L --capacity N [--price P]", a.runCreate},
		"approve":       {"approve EVENT_ID", a.runApprove},
		"reject":        {"reject EVENT_ID", a.runReject},
		"edit":          {"edit EVENT_ID (same flags as create)", a.runEdit},
		"delete":        {"delete EVENT_ID", a.runDelete},
		"show":          {"show EVENT_ID", a.runShow},
		"list":          {"list [--state suggested|approved] [--category C] [--search S] [--upcoming|--past]", a.runList},
		"book":          {"book EVENT_ID [--payment-method PM]", a.runBook},
		"ticket":        {"ticket EVENT_ID [--user N]", a.runTicket},
		"remaining":     {"remaining EVENT_ID", a.runRemaining},
		"tickets":       {"tickets [--event EVENT_ID]", a.runTickets},
		"migrate":       {"migrate [--down]", a.runMigrate},
		"serve-metrics": {"serve-metrics [--addr :9090]", a.runServeMetrics},
	}
	return a
}

// Run executes args[0] with the remaining arguments. Domain failures are
// printed as translated messages and returned.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return ErrUsage
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprintf(a.out, "unknown command %q\n", args[0])
		a.usage()
		return ErrUsage
	}
	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	fs.SetOutput(a.out)
	fs.StringVar(&a.locale, "locale", a.locale, "message locale (en, fr)")
	err := cmd.run(ctx, fs, args[1:])
	if err != nil && !errors.Is(err, ErrUsage) {
		fmt.Fprintln(a.out, a.messages.Error(a.locale, err))
		if domain.KindOf(err) == "" {
			fmt.Fprintf(a.out, "  (%v)\n", err)
		}
	}
	return err
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(a.out, "usage: campustix COMMAND [flags]  (identity: --actor N --role student|teacher|superadmin --department N)")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", a.commands[name].usage)
	}
}

func (a *App) say(key string, data map[string]any) {
	fmt.Fprintln(a.out, a.messages.T(a.locale, key, data))
}

// actorFlags registers the identity flags on fs.
type actorFlags struct {
	id         uint
	role       string
	department uint
}

func bindActor(fs *pflag.FlagSet) *actorFlags {
	f := &actorFlags{}
	fs.UintVar(&f.id, "actor", 0, "acting user id")
	fs.StringVar(&f.role, "role", "student", "acting user role")
	fs.UintVar(&f.department, "department", 0, "acting user department id")
	return f
}

func (f *actorFlags) actor() (entities.Actor, error) {
	role, ok := entities.ParseRole(f.role)
	if !ok {
		return entities.Actor{}, fmt.Errorf("%w: unknown role %q", ErrUsage, f.role)
	}
	return entities.Actor{UserID: f.id, Role: role, DepartmentID: f.department}, nil
}

// parse parses flags and returns the actor plus the positional arguments,
// requiring exactly positional of them.
func parse(fs *pflag.FlagSet, args []string, af *actorFlags, positional int) (entities.Actor, []string, error) {
	if err := fs.Parse(args); err != nil {
		return entities.Actor{}, nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() != positional {
		return entities.Actor{}, nil, fmt.Errorf("%w: expected %d argument(s), got %d", ErrUsage, positional, fs.NArg())
	}
	var actor entities.Actor
	if af != nil {
		var err error
		if actor, err = af.actor(); err != nil {
			return entities.Actor{}, nil, err
		}
	}
	return actor, fs.Args(), nil
}

func (a *App) printEvent(e *entities.Event) {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s, %s]", e.ID, e.Title, e.Category, e.State)
	if e.IsApproved() {
		fmt.Fprintf(&b, " %s @ %s", e.ScheduledAt.In(a.clock.Location()).Format("2006-01-02 15:04"), e.Location)
		if e.IsPast(a.clock.Now()) {
			b.WriteString(" (past)")
		}
	}
	fmt.Fprintf(&b, " capacity=%d price=%s", e.Capacity, e.Price.StringFixed(2))
	if e.DepartmentID != 0 {
		fmt.Fprintf(&b, " department=%d", e.DepartmentID)
	}
	fmt.Fprintln(a.out, b.String())
}

func (a *App) printTicket(t *entities.Ticket) {
	fmt.Fprintf(a.out, "ticket #%d event=%d user=%d code=%s issued=%s\n",
		t.ID, t.EventID, t.UserID, t.Code, t.CreatedAt.In(a.clock.Location()).Format("2006-01-02 15:04"))
}
