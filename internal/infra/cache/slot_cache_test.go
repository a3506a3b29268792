//go:build unit

package cache

import (
	"context"
	"testing"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisSlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSlotCache(client, time.Minute), mr
}

func mustDate(t *testing.T, s string) schedule.Date {
	t.Helper()
	d, err := schedule.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestRedisSlotCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	org := uuid.New()
	date := mustDate(t, "2025-03-10")

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)
	intervals := []slot.Interval{
		{Start: start, End: start.Add(30 * time.Minute)},
		{Start: start.Add(30 * time.Minute), End: start.Add(time.Hour)},
	}

	miss, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	assert.False(t, miss.Hit)
	assert.Zero(t, miss.Generation)

	require.NoError(t, c.Set(ctx, org, miss.Generation, 30, date, intervals))

	got, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	require.True(t, got.Hit)
	require.Len(t, got.Intervals, 2)
	for i := range intervals {
		assert.True(t, intervals[i].Start.Equal(got.Intervals[i].Start))
		assert.True(t, intervals[i].End.Equal(got.Intervals[i].End))
	}

	other, err := c.Get(ctx, org, 45, date)
	require.NoError(t, err)
	assert.False(t, other.Hit, "durations are cached separately")
}

func TestRedisSlotCacheEmptyDayIsAHit(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	org := uuid.New()
	date := mustDate(t, "2025-03-16")

	require.NoError(t, c.Set(ctx, org, 0, 30, date, nil))

	got, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	assert.True(t, got.Hit)
	assert.Empty(t, got.Intervals)
}

func TestRedisSlotCacheInvalidateOrganiser(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	org := uuid.New()
	other := uuid.New()
	date := mustDate(t, "2025-03-10")
	iv := []slot.Interval{{Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)}}

	require.NoError(t, c.Set(ctx, org, 0, 30, date, iv))
	require.NoError(t, c.Set(ctx, org, 0, 60, date.AddDays(1), iv))
	require.NoError(t, c.Set(ctx, other, 0, 30, date, iv))

	require.NoError(t, c.InvalidateOrganiser(ctx, org))

	got, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	assert.False(t, got.Hit)
	assert.Equal(t, int64(1), got.Generation)
	got, err = c.Get(ctx, org, 60, date.AddDays(1))
	require.NoError(t, err)
	assert.False(t, got.Hit)
	assert.False(t, mr.Exists(indexKey(org)))
	assert.False(t, mr.Exists(intervalKey(org, 0, 30, date)))

	got, err = c.Get(ctx, other, 30, date)
	require.NoError(t, err)
	assert.True(t, got.Hit, "other organisers keep their entries")
}

func TestRedisSlotCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	org := uuid.New()
	date := mustDate(t, "2025-03-10")

	require.NoError(t, c.Set(ctx, org, 0, 30, date, []slot.Interval{}))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	assert.False(t, got.Hit)
}

func TestRedisSlotCacheWriteFromBeforeInvalidationIsNeverRead(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	org := uuid.New()
	date := mustDate(t, "2025-03-10")
	stale := []slot.Interval{{Start: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), End: time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)}}

	// reader misses and starts computing from the old schedule
	before, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	require.False(t, before.Hit)

	// the schedule changes and invalidates before the reader writes back
	require.NoError(t, c.InvalidateOrganiser(ctx, org))
	require.NoError(t, c.Set(ctx, org, before.Generation, 30, date, stale))

	after, err := c.Get(ctx, org, 30, date)
	require.NoError(t, err)
	assert.False(t, after.Hit)
	assert.Greater(t, after.Generation, before.Generation)
}
