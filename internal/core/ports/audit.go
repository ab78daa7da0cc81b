package ports

import (
	"context"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// AuditLog receives one entry per committed mutation.
type AuditLog interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}

type actorKey struct{}

// WithActor returns a context carrying the authenticated user name.
func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, actorKey{}, name)
}

// ActorFrom returns the user name stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	name, _ := ctx.Value(actorKey{}).(string)
	return name
}
