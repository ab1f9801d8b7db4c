package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "worktrail:revoked:"

// TokenBlacklist records JWT IDs invalidated by logout. Entries carry
// a TTL equal to the token's remaining validity, after which Redis
// forgets them on its own. A nil client disables revocation (tokens
// then simply age out), which is how unit tests run without Redis.
type TokenBlacklist struct {
	rdb *redis.Client
}

func NewTokenBlacklist(rdb *redis.Client) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if b.rdb == nil || ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, tokenID string) bool {
	if b.rdb == nil {
		return false
	}
	n, err := b.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		// Fail open: an unreachable Redis must not lock every user out.
		return false
	}
	return n > 0
}
