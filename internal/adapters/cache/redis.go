package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/carewell/provider-portal/internal/ports"
)

const revokedKeyPrefix = "portal:revoked:"

// Connect accepts either a redis:// URL or a bare host:port address.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		opts, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{Addr: addr})
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// RedisSessionRevocationStore marks sessions revoked with a TTL aligned to
// the token lifetime, so markers expire exactly when the tokens they block
// would have expired anyway.
type RedisSessionRevocationStore struct {
	client *redis.Client
	nowFn  func() time.Time
}

func NewRedisSessionRevocationStore(client *redis.Client) *RedisSessionRevocationStore {
	return &RedisSessionRevocationStore{
		client: client,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

var _ ports.SessionRevocationStore = (*RedisSessionRevocationStore)(nil)

func (s *RedisSessionRevocationStore) MarkRevoked(ctx context.Context, sessionID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if s.nowFn != nil {
		ttl = expiresAt.Sub(s.nowFn())
	}
	if ttl <= 0 {
		return nil
	}
	key := revokedKeyPrefix + sessionID.String()
	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("mark session revoked: %w", err)
	}
	return nil
}

func (s *RedisSessionRevocationStore) IsRevoked(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	key := revokedKeyPrefix + sessionID.String()
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check session revoked: %w", err)
	}
	return n > 0, nil
}
