// Package transfer hands a single screening verdict from the view that
// produced it to the detail view that renders it. There is exactly one slot:
// every write replaces the previous verdict, and nothing is retained past
// the configured TTL.
package transfer

import (
	"context"
	"time"

	"amlscope/internal/screening"
)

// Key names the slot. It matches the key the analyst console has always
// used for session handoff.
const Key = "screening_result"

// Channel is a single-item, overwrite-on-write handoff. Take returns an
// error wrapping sentinel.ErrNotFound when the slot is empty or expired.
type Channel interface {
	Put(ctx context.Context, result screening.Result) error
	Take(ctx context.Context) (screening.Result, error)
}

type options struct {
	ttl           time.Duration
	consumeOnRead bool
	metrics       *Metrics
	now           func() time.Time
}

// Option configures a Channel implementation.
type Option func(*options)

// WithTTL bounds how long a written verdict stays readable. Zero means no
// expiry for the memory channel.
func WithTTL(ttl time.Duration) Option {
	return func(o *options) { o.ttl = ttl }
}

// WithConsumeOnRead empties the slot on the first successful Take.
func WithConsumeOnRead() Option {
	return func(o *options) { o.consumeOnRead = true }
}

// WithMetrics records Put/Take outcomes.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
