package ports

import (
	"context"
	"time"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// ExpenseInput carries the writable fields of an expense.
type ExpenseInput struct {
	Amount    float64
	UserID    int64
	Timestamp time.Time
}

// ExpenseService defines use-case operations for expenses.
type ExpenseService interface {
	Create(ctx context.Context, input ExpenseInput) (*domain.Expense, error)
	Get(ctx context.Context, id int64) (*domain.Expense, error)
	List(ctx context.Context, page domain.Page) ([]*domain.Expense, error)
	Update(ctx context.Context, id int64, input ExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, id int64) error
}
