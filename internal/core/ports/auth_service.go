package ports

import (
	"context"
	"time"

	"github.com/expensetracker/expense-service/internal/core/domain"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and verifies bearer tokens.
type TokenIssuer interface {
	IssueToken(subject string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*domain.TokenClaims, error)
}

// TokenRevoker keeps the ids of tokens that were logged out.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthService interface {
	Login(ctx context.Context, name, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.TokenClaims, error)
	Logout(ctx context.Context, claims *domain.TokenClaims) error
}
