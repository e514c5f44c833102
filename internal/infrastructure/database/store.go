package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"campustix/internal/infrastructure/database/queries"
	"campustix/internal/ports/output"
)

var _ output.Store = (*Store)(nil)

// Store implements output.Store on a pgx pool. Transactions run at read
// committed; booking correctness comes from the event row lock taken by
// FindByIDForUpdate and the (event_id, user_id) unique constraint.
type Store struct {
	pool *pgxpool.Pool
	q    *queries.Queries
	tx   pgx.Tx
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, q: queries.New(pool)}
}

func (s *Store) Events() output.EventRepository { return NewEventRepository(s.q) }

func (s *Store) Tickets() output.TicketRepository { return NewTicketRepository(s.q) }

func (s *Store) WithinTx(ctx context.Context, fn func(tx output.Store) error) error {
	if s.tx != nil {
		return fn(s)
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&Store{pool: s.pool, q: s.q.WithTx(tx), tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
