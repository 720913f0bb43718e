package transfer

import (
	"context"
	"errors"
	"sync"
	"time"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
)

type stored struct {
	result   screening.Result
	storedAt time.Time
}

// MemoryChannel keeps the slot in process memory.
type MemoryChannel struct {
	mu   sync.Mutex
	slot *stored
	opts options
}

// NewMemoryChannel creates an empty in-process channel.
func NewMemoryChannel(opts ...Option) *MemoryChannel {
	return &MemoryChannel{opts: buildOptions(opts)}
}

// Put replaces whatever the slot holds.
func (c *MemoryChannel) Put(_ context.Context, result screening.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slot = &stored{result: result, storedAt: c.opts.now()}
	c.opts.metrics.observe("put", "ok")
	return nil
}

// Take reads the slot. Expired entries are dropped and reported as missing.
func (c *MemoryChannel) Take(_ context.Context) (screening.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.slot == nil {
		c.opts.metrics.observe("take", "miss")
		return screening.Result{}, sentinel.ErrNotFound
	}
	if c.opts.ttl > 0 && c.opts.now().Sub(c.slot.storedAt) >= c.opts.ttl {
		c.slot = nil
		c.opts.metrics.observe("take", "miss")
		return screening.Result{}, errors.Join(sentinel.ErrNotFound, sentinel.ErrExpired)
	}

	result := c.slot.result
	if c.opts.consumeOnRead {
		c.slot = nil
	}
	c.opts.metrics.observe("take", "ok")
	return result, nil
}
