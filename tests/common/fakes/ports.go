//go:build unit || e2e

package fakes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"appointment-booking/internal/domain/schedule"
	"appointment-booking/internal/domain/slot"
	"appointment-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type Published struct {
	Topic string
	Body  []byte
}

// Publisher records messages. The first FailTimes calls return Err.
type Publisher struct {
	mu        sync.Mutex
	Messages  []Published
	FailTimes int
	Err       error
}

func (p *Publisher) Publish(_ context.Context, topic string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailTimes > 0 {
		p.FailTimes--
		if p.Err != nil {
			return p.Err
		}
		return fmt.Errorf("broker unavailable")
	}
	p.Messages = append(p.Messages, Published{Topic: topic, Body: body})
	return nil
}

// Metrics counts calls so tests can assert on side effects.
type Metrics struct {
	mu             sync.Mutex
	Created        int
	Rejected       map[string]int
	LockWaits      int
	Transitions    map[string]int
	PaymentResults map[string]int
	Swept          int
	Relayed        map[string]int
	CacheHits      int
	CacheMisses    int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Rejected:       map[string]int{},
		Transitions:    map[string]int{},
		PaymentResults: map[string]int{},
		Relayed:        map[string]int{},
	}
}

func (m *Metrics) BookingCreated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created++
}

func (m *Metrics) BookingRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[reason]++
}

func (m *Metrics) SlotLockWait(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LockWaits++
}

func (m *Metrics) StatusChanged(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transitions[from+"->"+to]++
}

func (m *Metrics) PaymentOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PaymentResults[outcome]++
}

func (m *Metrics) PendingSwept(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Swept += n
}

func (m *Metrics) OutboxRelayed(status string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Relayed[status] += n
}

func (m *Metrics) SlotCacheResult(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.CacheHits++
	} else {
		m.CacheMisses++
	}
}

type cacheKey struct {
	organiserID uuid.UUID
	generation  int64
	duration    int
	date        string
}

// SlotCache is an in-memory shared.SlotCache with the same generation rule
// as the Redis one.
type SlotCache struct {
	mu            sync.Mutex
	entries       map[cacheKey][]slot.Interval
	generations   map[uuid.UUID]int64
	Invalidations map[uuid.UUID]int
	Err           error
}

func NewSlotCache() *SlotCache {
	return &SlotCache{
		entries:       map[cacheKey][]slot.Interval{},
		generations:   map[uuid.UUID]int64{},
		Invalidations: map[uuid.UUID]int{},
	}
}

func (c *SlotCache) Get(_ context.Context, organiserID uuid.UUID, durationMinutes int, date schedule.Date) (shared.SlotCacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return shared.SlotCacheEntry{}, c.Err
	}
	gen := c.generations[organiserID]
	v, ok := c.entries[cacheKey{organiserID, gen, durationMinutes, date.String()}]
	return shared.SlotCacheEntry{Intervals: v, Generation: gen, Hit: ok}, nil
}

func (c *SlotCache) Set(_ context.Context, organiserID uuid.UUID, generation int64, durationMinutes int, date schedule.Date, intervals []slot.Interval) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.entries[cacheKey{organiserID, generation, durationMinutes, date.String()}] = intervals
	return nil
}

func (c *SlotCache) InvalidateOrganiser(_ context.Context, organiserID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidations[organiserID]++
	c.generations[organiserID]++
	for k := range c.entries {
		if k.organiserID == organiserID {
			delete(c.entries, k)
		}
	}
	return c.Err
}

func (c *SlotCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
