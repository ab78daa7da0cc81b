package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

type ExpenseRepository struct {
	db DBTX
}

func NewExpenseRepository(db DBTX) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// Create inserts the expense. A missing owner surfaces as domain.ErrUserNotFound.
func (r *ExpenseRepository) Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	query :=
		`INSERT INTO expenses (amount, user_id, "timestamp")
		 VALUES ($1, $2, $3)
		 RETURNING id`

	created := *expense
	created.Timestamp = expense.Timestamp.UTC()
	err := r.db.QueryRowContext(ctx, query, created.Amount, created.UserID, created.Timestamp).Scan(&created.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	return &created, nil
}

func (r *ExpenseRepository) Get(ctx context.Context, id int64) (*domain.Expense, error) {
	query :=
		`SELECT id, amount, user_id, "timestamp" FROM expenses
		 WHERE id = $1`

	e := &domain.Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Amount, &e.UserID, &e.Timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("find expense: %w", err)
	}
	e.Timestamp = e.Timestamp.UTC()
	return e, nil
}

func (r *ExpenseRepository) List(ctx context.Context, page domain.Page) ([]*domain.Expense, error) {
	query :=
		`SELECT id, amount, user_id, "timestamp" FROM expenses
		 ORDER BY id
		 LIMIT $1 OFFSET $2`

	return r.query(ctx, query, page.Limit, page.Offset)
}

// ListByUser returns the expenses owned by userID.
func (r *ExpenseRepository) ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Expense, error) {
	query :=
		`SELECT id, amount, user_id, "timestamp" FROM expenses
		 WHERE user_id = $1
		 ORDER BY id
		 LIMIT $2 OFFSET $3`

	return r.query(ctx, query, userID, page.Limit, page.Offset)
}

func (r *ExpenseRepository) Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	query :=
		`UPDATE expenses SET amount = $1, user_id = $2, "timestamp" = $3
		 WHERE id = $4`

	updated := *expense
	updated.Timestamp = expense.Timestamp.UTC()
	res, err := r.db.ExecContext(ctx, query, updated.Amount, updated.UserID, updated.Timestamp, updated.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}
	if err := expectOneRow(res, domain.ErrExpenseNotFound); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ExpenseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return expectOneRow(res, domain.ErrExpenseNotFound)
}

func (r *ExpenseRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []*domain.Expense{}
	for rows.Next() {
		e := &domain.Expense{}
		if err := rows.Scan(&e.ID, &e.Amount, &e.UserID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		e.Timestamp = e.Timestamp.UTC()
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}
