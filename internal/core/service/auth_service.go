package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/expensetracker/expense-service/internal/api/metrics"
	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

const defaultTokenTTL = 30 * time.Minute

// AuthService implements login, token authentication and logout.
type AuthService struct {
	store    ports.Store
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	revoker  ports.TokenRevoker
	tokenTTL time.Duration
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. revoker may be nil, in which case
// logout is a no-op and every valid token is accepted until it expires.
func NewAuthService(
	store ports.Store,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	revoker ports.TokenRevoker,
	tokenTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		revoker:  revoker,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Login checks the credentials and returns a signed bearer token. Unknown
// users and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, name, password string) (string, error) {
	if name == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	var user *domain.User
	err := s.store.Do(ctx, func(ctx context.Context, repos ports.Repositories) error {
		var err error
		user, err = repos.Users().FindByName(ctx, name)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(user.Name, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("accepted").Inc()
	s.log.Info().Str("user", user.Name).Msg("user logged in")
	return token, nil
}

// Authenticate validates the token and rejects it when it was logged out.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	if s.revoker == nil || claims.ID == "" {
		return claims, nil
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("authenticate: revocation check: %w", err)
	}
	if revoked {
		s.log.Debug().Str("user", claims.Subject).Str("jti", claims.ID).Msg("revoked token rejected")
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *domain.TokenClaims) error {
	if claims == nil {
		return domain.ErrInvalidToken
	}
	if s.revoker == nil || claims.ID == "" {
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.ID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	metrics.TokensRevokedTotal.Inc()
	s.log.Info().Str("user", claims.Subject).Msg("user logged out")
	return nil
}
