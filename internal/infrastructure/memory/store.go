// Package memory is an in-process output.Store. Transactions hold one
// store-wide lock and work on a copy that replaces the live data on commit,
// which makes them serializable.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"campustix/internal/domain"
	"campustix/internal/domain/entities"
	"campustix/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

type data struct {
	events       map[uint]entities.Event
	tickets      map[uint]entities.Ticket
	nextEventID  uint
	nextTicketID uint
}

func (d *data) clone() *data {
	c := &data{
		events:       make(map[uint]entities.Event, len(d.events)),
		tickets:      make(map[uint]entities.Ticket, len(d.tickets)),
		nextEventID:  d.nextEventID,
		nextTicketID: d.nextTicketID,
	}
	for k, v := range d.events {
		c.events[k] = v
	}
	for k, v := range d.tickets {
		c.tickets[k] = v
	}
	return c
}

type Store struct {
	mu sync.Mutex
	d  *data
}

func NewStore() *Store {
	return &Store{d: &data{
		events:       map[uint]entities.Event{},
		tickets:      map[uint]entities.Ticket{},
		nextEventID:  1,
		nextTicketID: 1,
	}}
}

func (s *Store) Events() output.EventRepository { return &eventRepo{lock: &s.mu, get: s.current} }

func (s *Store) Tickets() output.TicketRepository { return &ticketRepo{lock: &s.mu, get: s.current} }

func (s *Store) current() *data { return s.d }

func (s *Store) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	tx := &txStore{d: s.d.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.d = tx.d
	return nil
}

// txStore runs inside the store lock, so its repositories do not lock.
type txStore struct {
	d *data
}

func (t *txStore) Events() output.EventRepository { return &eventRepo{get: t.current} }

func (t *txStore) Tickets() output.TicketRepository { return &ticketRepo{get: t.current} }

func (t *txStore) current() *data { return t.d }

func (t *txStore) WithinTx(_ context.Context, fn func(tx output.Store) error) error {
	return fn(t)
}

type nopLocker struct{}

func (nopLocker) Lock()   {}
func (nopLocker) Unlock() {}

func locker(l sync.Locker) sync.Locker {
	if l == nil {
		return nopLocker{}
	}
	return l
}

type eventRepo struct {
	lock sync.Locker
	get  func() *data
}

func (r *eventRepo) Create(_ context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	d := r.get()
	event.ID = d.nextEventID
	d.nextEventID++
	d.events[event.ID] = *event
	return nil
}

func (r *eventRepo) FindByID(_ context.Context, id uint) (*entities.Event, error) {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	e, ok := r.get().events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *eventRepo) FindByIDForUpdate(ctx context.Context, id uint) (*entities.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *eventRepo) List(_ context.Context, f output.EventFilter) ([]entities.Event, error) {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := []entities.Event{}
	for _, e := range r.get().events {
		if f.State != 0 && e.State != f.State {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(e.Title), search) {
			continue
		}
		if !f.After.IsZero() && (!e.IsApproved() || e.ScheduledAt.Before(f.After)) {
			continue
		}
		if !f.Before.IsZero() && (!e.IsApproved() || !e.ScheduledAt.Before(f.Before)) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ScheduledAt.Equal(out[j].ScheduledAt) {
			return out[i].ScheduledAt.Before(out[j].ScheduledAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *eventRepo) Update(_ context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	d := r.get()
	if _, ok := d.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	d.events[event.ID] = *event
	return nil
}

func (r *eventRepo) Delete(_ context.Context, id uint) error {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	d := r.get()
	if _, ok := d.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(d.events, id)
	for tid, t := range d.tickets {
		if t.EventID == id {
			delete(d.tickets, tid)
		}
	}
	return nil
}

type ticketRepo struct {
	lock sync.Locker
	get  func() *data
}

func (r *ticketRepo) Create(_ context.Context, ticket *entities.Ticket) error {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	d := r.get()
	if _, ok := d.events[ticket.EventID]; !ok {
		return domain.ErrEventNotFound
	}
	for _, t := range d.tickets {
		if t.EventID == ticket.EventID && t.UserID == ticket.UserID {
			return domain.ErrAlreadyBooked
		}
	}
	ticket.ID = d.nextTicketID
	d.nextTicketID++
	d.tickets[ticket.ID] = *ticket
	return nil
}

func (r *ticketRepo) FindByEventIDAndUserID(_ context.Context, eventID, userID uint) (*entities.Ticket, error) {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	for _, t := range r.get().tickets {
		if t.EventID == eventID && t.UserID == userID {
			return &t, nil
		}
	}
	return nil, domain.ErrTicketNotFound
}

func (r *ticketRepo) FindByEventID(_ context.Context, eventID uint) ([]entities.Ticket, error) {
	return r.filter(func(t entities.Ticket) bool { return t.EventID == eventID }), nil
}

func (r *ticketRepo) FindByUserID(_ context.Context, userID uint) ([]entities.Ticket, error) {
	return r.filter(func(t entities.Ticket) bool { return t.UserID == userID }), nil
}

func (r *ticketRepo) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	tickets, _ := r.FindByEventID(ctx, eventID)
	return int64(len(tickets)), nil
}

func (r *ticketRepo) filter(keep func(entities.Ticket) bool) []entities.Ticket {
	l := locker(r.lock)
	l.Lock()
	defer l.Unlock()
	out := []entities.Ticket{}
	for _, t := range r.get().tickets {
		if keep(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
