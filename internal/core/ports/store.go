package ports

import "context"

// Repositories exposes the repositories bound to one transaction.
type Repositories interface {
	Users() UserRepository
	Expenses() ExpenseRepository
}

// Store runs units of work. Do opens a transaction, hands fn repositories
// bound to it, commits when fn returns nil and rolls back otherwise.
type Store interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
