package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/todo-server/internal/model"
)

// NewClient creates and pings a Redis client.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// Internal adapter interface to enable mocking without a real Redis server.
// *goredis.Client satisfies it.
type redisAPI interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Exists(ctx context.Context, keys ...string) *goredis.IntCmd
}

var _ model.Denylist = (*Denylist)(nil)

// Denylist stores revoked access token IDs with a TTL matching the
// remaining lifetime of the token.
type Denylist struct {
	api redisAPI
}

func NewDenylist(client *goredis.Client) *Denylist {
	return NewDenylistWithAPI(client)
}

func NewDenylistWithAPI(api redisAPI) *Denylist {
	return &Denylist{api: api}
}

const denylistPrefix = "denylist:access:"

// Revoke denylists jti for ttl. Tokens that have already expired are skipped.
func (d *Denylist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := d.api.Set(ctx, denylistPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke access token: %w", err)
	}
	return nil
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.api.Exists(ctx, denylistPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check access token: %w", err)
	}
	return n > 0, nil
}
