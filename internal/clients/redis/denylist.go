package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/matchpointhq/matchpoint-backend/internal/platform/logger"
)

// TokenDenylist tracks revoked sessions so outstanding access tokens minted
// from them stop working before they expire. Entries carry a TTL matching the
// access-token lifetime; after that the JWT expiry alone is enough.
type TokenDenylist interface {
	Deny(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error
	IsDenied(ctx context.Context, sessionID uuid.UUID) (bool, error)
	Close() error
}

type denylist struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewTokenDenylist(addr string, log *logger.Logger) (TokenDenylist, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &denylist{
		log:    log.With("service", "TokenDenylist"),
		rdb:    rdb,
		prefix: "denylist:session:",
	}, nil
}

func (d *denylist) Deny(ctx context.Context, sessionID uuid.UUID, ttl time.Duration) error {
	if d == nil || d.rdb == nil {
		return fmt.Errorf("token denylist not initialized")
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return d.rdb.Set(ctx, d.prefix+sessionID.String(), "1", ttl).Err()
}

func (d *denylist) IsDenied(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	if d == nil || d.rdb == nil {
		return false, fmt.Errorf("token denylist not initialized")
	}
	n, err := d.rdb.Exists(ctx, d.prefix+sessionID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (d *denylist) Close() error {
	if d == nil || d.rdb == nil {
		return nil
	}
	return d.rdb.Close()
}
