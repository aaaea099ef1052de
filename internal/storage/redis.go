package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/scenario-player/pkg/state"
	"github.com/jwebster45206/scenario-player/pkg/storage"
)

const snapshotKeyPrefix = "save:"

// RedisStorage implements the Storage interface using Redis for save slots
// and the filesystem library for books.
type RedisStorage struct {
	*Library
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance. A zero ttl keeps
// save slots forever.
func NewRedisStorage(redisURL string, lib *Library, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	return &RedisStorage{
		Library: lib,
		client:  redis.NewClient(opt),
		logger:  logger,
		ttl:     ttl,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, attempts int, delay time.Duration) error {
	for i := 0; i < attempts; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(delay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", attempts)
}

// Save slot operations (Redis-backed)

func (r *RedisStorage) SaveSnapshot(ctx context.Context, snap *state.Snapshot) error {
	if snap == nil {
		return errors.New("snapshot cannot be nil")
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now()
	}

	data, err := snap.Marshal()
	if err != nil {
		r.logger.Error("Failed to marshal snapshot", "slot", snap.Slot, "error", err)
		return err
	}

	if err := r.client.Set(ctx, snapshotKeyPrefix+snap.Slot, data, r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save snapshot", "slot", snap.Slot, "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSnapshot(ctx context.Context, slot string) (*state.Snapshot, error) {
	data, err := r.client.Get(ctx, snapshotKeyPrefix+slot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Save slot empty", "slot", slot)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load snapshot", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	snap, err := state.UnmarshalSnapshot(data)
	if err != nil {
		r.logger.Error("Failed to unmarshal snapshot", "slot", slot, "error", err)
		return nil, err
	}
	return snap, nil
}

func (r *RedisStorage) DeleteSnapshot(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, snapshotKeyPrefix+slot).Err(); err != nil {
		r.logger.Error("Failed to delete snapshot", "slot", slot, "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// ListSnapshots scans every save key. Entries that expire between the scan
// and the read, or that do not decode, are skipped.
func (r *RedisStorage) ListSnapshots(ctx context.Context) ([]*state.Snapshot, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan save slots: %w", err)
	}

	snaps := make([]*state.Snapshot, 0, len(keys))
	if len(keys) == 0 {
		return snaps, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read save slots: %w", err)
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		snap, err := state.UnmarshalSnapshot([]byte(s))
		if err != nil {
			r.logger.Warn("Skipping unreadable save slot", "key", keys[i], "error", err)
			continue
		}
		snaps = append(snaps, snap)
	}

	storage.SortSnapshots(snaps)
	return snaps, nil
}
