package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
)

func verdict(decision string) screening.Result {
	return screening.Result{
		IsSubjectMatch:   true,
		MatchConfidence:  0.82,
		OverallRiskLabel: screening.RiskMedium,
		Decision:         decision,
	}
}

func TestMemoryChannelMissOnEmpty(t *testing.T) {
	c := NewMemoryChannel()
	_, err := c.Take(context.Background())
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestMemoryChannelReadAfterWrite(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChannel()

	require.NoError(t, c.Put(ctx, verdict("escalate")))
	got, err := c.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, verdict("escalate"), got)

	again, err := c.Take(ctx)
	require.NoError(t, err, "reads do not consume by default")
	assert.Equal(t, got, again)
}

func TestMemoryChannelOverwrites(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChannel()

	require.NoError(t, c.Put(ctx, verdict("first")))
	require.NoError(t, c.Put(ctx, verdict("second")))

	got, err := c.Take(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Decision)
}

func TestMemoryChannelConsumeOnRead(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryChannel(WithConsumeOnRead())

	require.NoError(t, c.Put(ctx, verdict("once")))
	_, err := c.Take(ctx)
	require.NoError(t, err)

	_, err = c.Take(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
}

func TestMemoryChannelExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := NewMemoryChannel(WithTTL(time.Minute), WithClock(clock))

	require.NoError(t, c.Put(ctx, verdict("fresh")))

	now = now.Add(59 * time.Second)
	_, err := c.Take(ctx)
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, err = c.Take(ctx)
	assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	assert.True(t, errors.Is(err, sentinel.ErrExpired))
}

func TestMemoryChannelMetrics(t *testing.T) {
	ctx := context.Background()
	m := NewMetrics(prometheus.NewRegistry())
	c := NewMemoryChannel(WithMetrics(m))

	_, _ = c.Take(ctx)
	_ = c.Put(ctx, verdict("x"))
	_, _ = c.Take(ctx)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("take", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("put", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("take", "ok")))
}

func TestChannelImplementations(t *testing.T) {
	var _ Channel = (*MemoryChannel)(nil)
	var _ Channel = (*RedisChannel)(nil)
}
