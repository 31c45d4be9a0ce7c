package dedupe

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Manasess896/X-bot/domain/models"
	"github.com/Manasess896/X-bot/domain/ports"
)

// RedisStore keeps the published set in one redis SET per kind. Same
// contract as the file store, for deployments where the flat file would
// not scale or survive the host.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisStore connects to redis at addr and verifies the connection.
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{
		client: client,
		logger: slog.Default().With("component", "dedupe_redisstore"),
	}, nil
}

// HasPublished checks set membership, failing open on redis errors.
func (s *RedisStore) HasPublished(ctx context.Context, kind models.Kind, identifier string) bool {
	member, err := s.client.SIsMember(ctx, s.key(kind), identifier).Result()
	if err != nil {
		s.logger.WarnContext(ctx, "Redis membership check failed, treating as unpublished",
			"kind", kind, "error", err)
		return false
	}
	return member
}

// RecordPublished adds identifier to the kind's set.
func (s *RedisStore) RecordPublished(ctx context.Context, kind models.Kind, identifier string) error {
	if err := s.client.SAdd(ctx, s.key(kind), identifier).Err(); err != nil {
		return fmt.Errorf("failed to record publish in redis: %w", err)
	}
	return nil
}

// Close releases the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(kind models.Kind) string {
	return "xbot:published:" + string(kind)
}

// Verify interface implementation
var _ ports.DedupeStore = (*RedisStore)(nil)
