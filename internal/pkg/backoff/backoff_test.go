//go:build unit

package backoff_test

import (
	"context"
	"testing"
	"time"

	"appointment-booking/internal/pkg/backoff"

	"github.com/stretchr/testify/assert"
)

func TestJittered(t *testing.T) {
	base := 100 * time.Millisecond
	for attempt := 0; attempt < 4; attempt++ {
		want := time.Duration(1<<attempt) * base
		for i := 0; i < 20; i++ {
			got := backoff.Jittered(attempt, base)
			assert.GreaterOrEqual(t, got, want)
			assert.LessOrEqual(t, got, want+want/5)
		}
	}
	assert.Equal(t, time.Duration(0), backoff.Jittered(3, 0))
}

func TestSleepHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	err := backoff.Sleep(ctx, time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	assert.NoError(t, backoff.Sleep(context.Background(), time.Millisecond))
}
