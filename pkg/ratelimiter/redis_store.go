package ratelimiter

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript implements the token bucket atomically in Redis. Bucket
// state is a hash {tokens, last_refill_ms}; the key expires once the bucket
// has been idle long enough to refill completely.
//
// KEYS[1] = bucket key
// ARGV    = capacity, refill_rate, refill_interval_ms, tokens_to_consume, now_ms
// Returns {remaining, last_refill_ms}
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local consume = tonumber(ARGV[4])
local now_ms = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = now_ms - last_refill
local max_intervals = math.floor(capacity / refill_rate) + 1
local intervals = math.floor(elapsed / interval_ms)
if intervals > max_intervals then
  intervals = max_intervals
end
if intervals > 0 then
  tokens = math.min(tokens + intervals * refill_rate, capacity)
  last_refill = now_ms
end

tokens = tokens - consume

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('PEXPIRE', KEYS[1], interval_ms * (max_intervals + 1))

return {tokens, last_refill}
`)

// RedisStore implements Store backed by Redis, sharing bucket state across
// service replicas.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a redis-backed store. Keys are namespaced with
// prefix to keep the keyspace shared with other features tidy.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &RedisStore{client: client, keyPrefix: prefix}
}

func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	now := time.Now()
	res, err := consumeScript.Run(ctx, rs.client, []string{rs.key(key)},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
		now.UnixMilli(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, errors.Join(ErrStoreUnavailable, err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, ErrStoreUnavailable
	}

	remaining := int(res[0])
	lastRefill := time.UnixMilli(res[1])
	return remaining, lastRefill.Add(config.RefillInterval), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.key(key)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (rs *RedisStore) key(key string) string {
	return rs.keyPrefix + ":" + key
}
