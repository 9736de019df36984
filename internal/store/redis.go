package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aldara/sentra/internal/engine"
)

const redisKeyPrefix = "sentra:agent:"

// Redis persists context snapshots as JSON values keyed per agent.
type Redis struct {
	rdb    *redis.Client
	logger *zap.Logger
}

// NewRedis creates a Redis-backed snapshot store.
func NewRedis(redisURL string, logger *zap.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	logger.Info("Redis connected")
	return &Redis{rdb: rdb, logger: logger}, nil
}

// Close shuts down the client.
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Snapshots returns the engine.ContextStore view for an agent.
func (r *Redis) Snapshots(agentID string) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: r.rdb, key: redisKeyPrefix + agentID + ":context"}
}

// RedisSnapshotStore binds one agent's snapshot key, implementing
// engine.ContextStore.
type RedisSnapshotStore struct {
	rdb *redis.Client
	key string
}

func (s *RedisSnapshotStore) Load(ctx context.Context) (*engine.AgentContext, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	var ac engine.AgentContext
	if err := json.Unmarshal(data, &ac); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.key, err)
	}
	return &ac, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, ac *engine.AgentContext) error {
	data, err := json.Marshal(ac)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}
