package ports

import (
	"context"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// ExpenseRepository defines persistence operations for expenses.
// Listings are ordered by ID.
type ExpenseRepository interface {
	// Create inserts the expense. An unknown UserID yields domain.ErrUserNotFound.
	Create(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Get(ctx context.Context, id int64) (*domain.Expense, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Expense, error)
	ListByUser(ctx context.Context, userID int64, page domain.Page) ([]*domain.Expense, error)
	Update(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id int64) error
}
