package output

import "context"

// Store gives access to the repositories and to a transaction boundary.
type Store interface {
	Events() EventRepository
	Tickets() TicketRepository
	// WithinTx runs fn in one transaction. A nil return commits; any error
	// rolls back and is returned unchanged. Nested calls join the outer
	// transaction.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
}
