package pacer

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix is the prefix used for all keys stored in Redis.
const KeyPrefix = "pacer:"

// The script claims the window atomically: if the key exists the window is
// still closed and the remaining ttl is returned, otherwise it is claimed
// for the full interval.
const claimWindowLua = `
local key = KEYS[1]
local interval = tonumber(ARGV[1])

local ttl = redis.call('PTTL', key)
if ttl > 0 then
    return {0, ttl}
end

redis.call('SET', key, 1, 'PX', interval)
return {1, 0}
`

type redisGate struct {
	client *redis.Client
	cfg    Config
	script *redis.Script
}

// NewRedisGate creates a Redis-backed leading-edge gate so that multiple
// processes share one admission window per identifier.
func NewRedisGate(client *redis.Client, cfg Config) Gate {
	return &redisGate{
		client: client,
		cfg:    cfg,
		script: redis.NewScript(claimWindowLua),
	}
}

// Allow claims the identifier's window if it is open.
func (r *redisGate) Allow(ctx context.Context, identifier string) (bool, time.Duration, error) {
	intervalMs := r.cfg.Interval.Milliseconds()

	// Keys: [pacer:pointer_37]
	// Args: [window_size_ms]
	values, err := r.script.Run(ctx, r.client, []string{KeyPrefix + identifier}, intervalMs).Result()
	if err != nil {
		return false, 0, err
	}

	res := values.([]interface{})
	allowed := res[0].(int64) == 1
	retryAfter := time.Duration(res[1].(int64)) * time.Millisecond

	return allowed, retryAfter, nil
}

// Close releases any resources held by the gate.
func (r *redisGate) Close(ctx context.Context) error {
	// no background goroutine to stop; implement to satisfy interface
	return nil
}
