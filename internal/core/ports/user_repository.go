package ports

import (
	"context"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// Create inserts the user and returns it with its generated ID.
	// A taken name yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	FindByName(ctx context.Context, name string) (*domain.User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// Delete removes the user; owned expenses go with it.
	Delete(ctx context.Context, id int64) error
}
