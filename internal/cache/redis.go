package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"calendar-be/internal/entities"
)

// EventCache stores the full event list of a single owner. Every owner has a
// generation that InvalidateOwner bumps; SetOwnerEvents only stores a list
// read under the current generation, so a list loaded before a write can
// not outlive that write's invalidation.
type EventCache interface {
	Generation(ctx context.Context, ownerID uuid.UUID) (int64, error)
	GetOwnerEvents(ctx context.Context, ownerID uuid.UUID) ([]entities.Event, bool, error)
	SetOwnerEvents(ctx context.Context, ownerID uuid.UUID, generation int64, events []entities.Event) error
	InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error
	Close() error
}

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a new Redis-backed event cache
func NewRedisCache(ctx context.Context, redisURL string, ttl time.Duration) (EventCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		// If URL parsing fails, try as simple host:port
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCache{client: client, ttl: ttl}, nil
}

// OwnerKey is the cache key holding an owner's event list
func OwnerKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("events:owner:%s", ownerID)
}

// GenerationKey is the counter bumped on every invalidation of an owner
func GenerationKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("events:owner:%s:gen", ownerID)
}

// Generation returns the owner's current generation; a missing counter is 0
func (r *redisCache) Generation(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	gen, err := r.client.Get(ctx, GenerationKey(ownerID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// GetOwnerEvents returns the cached list; the bool is false on a miss
func (r *redisCache) GetOwnerEvents(ctx context.Context, ownerID uuid.UUID) ([]entities.Event, bool, error) {
	data, err := r.client.Get(ctx, OwnerKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var events []entities.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return events, true, nil
}

// SetOwnerEvents stores the owner's list with the configured TTL unless the
// generation has moved past the one the list was read under
func (r *redisCache) SetOwnerEvents(ctx context.Context, ownerID uuid.UUID, generation int64, events []entities.Event) error {
	if events == nil {
		events = []entities.Event{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	genKey := GenerationKey(ownerID)
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, OwnerKey(ownerID), data, r.ttl)
			return nil
		})
		return err
	}, genKey)

	// The generation changed between GET and EXEC: an invalidation won.
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateOwner bumps the owner's generation and drops the cached list
func (r *redisCache) InvalidateOwner(ctx context.Context, ownerID uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenerationKey(ownerID))
		pipe.Del(ctx, OwnerKey(ownerID))
		return nil
	})
	return err
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
