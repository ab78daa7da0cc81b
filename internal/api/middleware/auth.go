// Package middleware holds the echo middleware of the API.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/expensetracker/expense-service/internal/core/domain"
	"github.com/expensetracker/expense-service/internal/core/ports"
)

// ClaimsKey is the echo context key holding *domain.TokenClaims.
const ClaimsKey = "claims"

// Authenticator resolves a raw bearer token into its claims.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// Auth validates the bearer token and injects its claims into the echo
// context. The token subject also becomes the audit actor of the request.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			req := c.Request()
			claims, err := authn.Authenticate(req.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					return echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
				}
				return err
			}

			c.Set(ClaimsKey, claims)
			c.SetRequest(req.WithContext(ports.WithActor(req.Context(), claims.Subject)))

			return next(c)
		}
	}
}
