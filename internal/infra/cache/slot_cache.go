package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "slots"

// RedisSlotCache keeps candidate intervals per (organiser, generation,
// duration, date). Invalidation bumps the organiser's generation, so a write
// computed from the old schedule lands under a key nobody reads. The index set
// lets invalidation free the old keys early.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlotCache(client *redis.Client, ttl time.Duration) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl}
}

func (c *RedisSlotCache) Get(ctx context.Context, organiserID uuid.UUID, durationMinutes int, date schedule.Date) (shared.SlotCacheEntry, error) {
	gen, err := c.client.Get(ctx, generationKey(organiserID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return shared.SlotCacheEntry{}, fmt.Errorf("slot cache generation: %w", err)
	}
	entry := shared.SlotCacheEntry{Generation: gen}

	data, err := c.client.Get(ctx, intervalKey(organiserID, gen, durationMinutes, date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return entry, nil
	}
	if err != nil {
		return entry, fmt.Errorf("slot cache get: %w", err)
	}

	if err := json.Unmarshal(data, &entry.Intervals); err != nil {
		return entry, fmt.Errorf("slot cache decode: %w", err)
	}
	entry.Hit = true
	return entry, nil
}

func (c *RedisSlotCache) Set(ctx context.Context, organiserID uuid.UUID, generation int64, durationMinutes int, date schedule.Date, intervals []slot.Interval) error {
	if intervals == nil {
		intervals = []slot.Interval{}
	}
	data, err := json.Marshal(intervals)
	if err != nil {
		return fmt.Errorf("slot cache encode: %w", err)
	}

	key := intervalKey(organiserID, generation, durationMinutes, date)
	idx := indexKey(organiserID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, data, c.ttl)
		pipe.SAdd(ctx, idx, key)
		pipe.Expire(ctx, idx, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("slot cache set: %w", err)
	}
	return nil
}

func (c *RedisSlotCache) InvalidateOrganiser(ctx context.Context, organiserID uuid.UUID) error {
	idx := indexKey(organiserID)
	keys, err := c.client.SMembers(ctx, idx).Result()
	if err != nil {
		return fmt.Errorf("slot cache index: %w", err)
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey(organiserID))
		pipe.Del(ctx, append(keys, idx)...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("slot cache invalidate: %w", err)
	}
	return nil
}

func intervalKey(organiserID uuid.UUID, generation int64, durationMinutes int, date schedule.Date) string {
	return fmt.Sprintf("%s:%s:g%d:%d:%s", keyPrefix, organiserID, generation, durationMinutes, date)
}

func indexKey(organiserID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:index", keyPrefix, organiserID)
}

func generationKey(organiserID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:gen", keyPrefix, organiserID)
}

// NoopSlotCache is used when REDIS_ADDR is empty.
type NoopSlotCache struct{}

func (NoopSlotCache) Get(context.Context, uuid.UUID, int, schedule.Date) (shared.SlotCacheEntry, error) {
	return shared.SlotCacheEntry{}, nil
}

func (NoopSlotCache) Set(context.Context, uuid.UUID, int64, int, schedule.Date, []slot.Interval) error {
	return nil
}

func (NoopSlotCache) InvalidateOrganiser(context.Context, uuid.UUID) error { return nil }
