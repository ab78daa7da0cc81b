package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/expensetracker/expense-service/internal/core/ports"
)

// Store runs units of work against a *sql.DB. Every call to Do owns one
// transaction from begin to commit or rollback.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

type repositories struct {
	users    *UserRepository
	expenses *ExpenseRepository
}

func (r repositories) Users() ports.UserRepository       { return r.users }
func (r repositories) Expenses() ports.ExpenseRepository { return r.expenses }

// Do begins a transaction, runs fn with repositories bound to it, and then
// commits on success or rolls back on error or panic. Panics are rethrown.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos ports.Repositories) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = fmt.Errorf("commit tx: %w", cerr)
		}
	}()

	return fn(ctx, repositories{
		users:    NewUserRepository(tx),
		expenses: NewExpenseRepository(tx),
	})
}
