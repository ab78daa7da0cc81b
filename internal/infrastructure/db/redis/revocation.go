package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker keeps logged-out token ids in Redis until the token would have
// expired on its own. Key format: revoked:<jti>
type Revoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client, now: time.Now}
}

// Revoke marks tokenID as revoked until the given instant. Tokens already
// past their expiry are ignored.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func revokedKey(tokenID string) string {
	return "revoked:" + tokenID
}
