//go:build integration

package transfer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
	"amlscope/pkg/testutil/containers"
)

type RedisChannelSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	ctx   context.Context
}

func TestRedisChannelSuite(t *testing.T) {
	suite.Run(t, new(RedisChannelSuite))
}

func (s *RedisChannelSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisChannelSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

func (s *RedisChannelSuite) TestRoundTrip() {
	c := NewRedisChannel(s.redis.Client, WithTTL(time.Minute))

	_, err := c.Take(s.ctx)
	s.True(errors.Is(err, sentinel.ErrNotFound))

	conf := 0.4
	in := verdict("needs_manual_review")
	in.Details.DOBAge = &screening.DOBAge{Confidence: &conf, IsDOBOrAgeConsistent: screening.Inconsistent}
	s.Require().NoError(c.Put(s.ctx, in))

	got, err := c.Take(s.ctx)
	s.Require().NoError(err)
	s.Equal(in, got)

	ttl, err := s.redis.Client.TTL(s.ctx, keyPrefix+Key).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 50*time.Second)
}

func (s *RedisChannelSuite) TestOverwriteAndConsume() {
	c := NewRedisChannel(s.redis.Client, WithTTL(time.Minute), WithConsumeOnRead())

	s.Require().NoError(c.Put(s.ctx, verdict("first")))
	s.Require().NoError(c.Put(s.ctx, verdict("second")))

	got, err := c.Take(s.ctx)
	s.Require().NoError(err)
	s.Equal("second", got.Decision)

	_, err = c.Take(s.ctx)
	s.True(errors.Is(err, sentinel.ErrNotFound))
}
