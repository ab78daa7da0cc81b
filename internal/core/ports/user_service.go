package ports

import (
	"context"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// UserService defines use-case operations for users.
type UserService interface {
	Create(ctx context.Context, name, password string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	GetByName(ctx context.Context, name string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id int64, name, password string) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ListExpenses(ctx context.Context, id int64, page domain.Page) ([]*domain.Expense, error)
}
