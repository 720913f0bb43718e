package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"amlscope/internal/screening"
	"amlscope/pkg/platform/sentinel"
)

// keyPrefix namespaces the slot so several deployments can share a Redis.
const keyPrefix = "amlscope:transfer:"

// RedisChannel keeps the slot in Redis so it survives restarts and is shared
// by every replica behind the same console. Expiry is delegated to Redis.
type RedisChannel struct {
	client *redis.Client
	key    string
	opts   options
}

// NewRedisChannel constructs a Redis-backed channel.
func NewRedisChannel(client *redis.Client, opts ...Option) *RedisChannel {
	return &RedisChannel{
		client: client,
		key:    keyPrefix + Key,
		opts:   buildOptions(opts),
	}
}

// Put overwrites the slot atomically with SET ... EX.
func (c *RedisChannel) Put(ctx context.Context, result screening.Result) error {
	payload, err := json.Marshal(result)
	if err != nil {
		c.opts.metrics.observe("put", "error")
		return fmt.Errorf("encode screening result: %w", err)
	}
	if err := c.client.Set(ctx, c.key, payload, c.opts.ttl).Err(); err != nil {
		c.opts.metrics.observe("put", "error")
		return fmt.Errorf("store screening result: %w: %w", sentinel.ErrUnavailable, err)
	}
	c.opts.metrics.observe("put", "ok")
	return nil
}

// Take reads the slot, deleting it in the same round trip when the channel
// consumes on read.
func (c *RedisChannel) Take(ctx context.Context) (screening.Result, error) {
	var cmd *redis.StringCmd
	if c.opts.consumeOnRead {
		cmd = c.client.GetDel(ctx, c.key)
	} else {
		cmd = c.client.Get(ctx, c.key)
	}

	payload, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		c.opts.metrics.observe("take", "miss")
		return screening.Result{}, sentinel.ErrNotFound
	}
	if err != nil {
		c.opts.metrics.observe("take", "error")
		return screening.Result{}, fmt.Errorf("load screening result: %w: %w", sentinel.ErrUnavailable, err)
	}

	var result screening.Result
	if err := json.Unmarshal(payload, &result); err != nil {
		c.opts.metrics.observe("take", "error")
		return screening.Result{}, fmt.Errorf("decode screening result: %w", err)
	}
	c.opts.metrics.observe("take", "ok")
	return result, nil
}
