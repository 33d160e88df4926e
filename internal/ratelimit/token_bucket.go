package ratelimit

import (
	"context"
	"errors"
	"math"
	"strconv"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// Tokens are stored in millitokens so Lua's integer replies keep precision.
const tokenBucketScript = `
local rate = tonumber(ARGV[1])
local burst = tonumber(ARGV[2])
local ttl = tonumber(ARGV[3])

local nowData = redis.call("TIME")
local now = (nowData[1] * 1000) + math.floor(nowData[2] / 1000)

local data = redis.call("HMGET", KEYS[1], "tokens", "ts")
local tokens = tonumber(data[1])
local ts = tonumber(data[2])

if tokens == nil then
  tokens = burst
  ts = now
else
  local delta = now - ts
  if delta < 0 then
    delta = 0
  end
  tokens = math.min(burst, tokens + (delta / 1000) * rate)
  ts = now
end

local allowed = 0
if tokens >= 1000 then
  allowed = 1
  tokens = tokens - 1000
end

redis.call("HSET", KEYS[1], "tokens", tokens, "ts", ts)
redis.call("PEXPIRE", KEYS[1], ttl)

return {allowed, math.floor(tokens)}
`

var (
	errNotConfigured = errors.New("rate limiter not configured")
	errEmptyKey      = errors.New("rate limiter key is empty")
	errBadResponse   = errors.New("invalid rate limit script response")
)

// TokenBucket is a shared bucket per key kept in Redis.
type TokenBucket struct {
	client *redis.Client
	script *redis.Script
	rate   float64
	burst  int
	prefix string
}

func NewTokenBucket(client *redis.Client, rate float64, burst int, prefix string) *TokenBucket {
	if client == nil {
		return nil
	}
	return &TokenBucket{
		client: client,
		script: redis.NewScript(tokenBucketScript),
		rate:   rate,
		burst:  normalizeBurst(burst),
		prefix: prefix,
	}
}

func (t *TokenBucket) Allow(ctx context.Context, key string) (Result, error) {
	if t == nil || t.client == nil {
		return Result{}, errNotConfigured
	}
	if key == "" {
		return Result{}, errEmptyKey
	}

	res, err := t.script.Run(
		ctx,
		t.client,
		[]string{t.prefix + key},
		strconv.FormatFloat(t.rate*1000, 'f', -1, 64),
		t.burst*1000,
		bucketTTL(t.rate, t.burst).Milliseconds(),
	).Slice()
	if err != nil {
		return Result{}, err
	}
	if len(res) < 2 {
		return Result{}, errBadResponse
	}

	allowed := toInt64(res[0]) == 1
	remaining := float64(toInt64(res[1])) / 1000

	out := Result{
		Allowed:   allowed,
		Limit:     t.burst,
		Remaining: int(remaining),
	}
	if !allowed {
		out.RetryAfter = refillDelay(1-remaining, t.rate)
	}
	return out, nil
}

func bucketTTL(rate float64, burst int) time.Duration {
	if rate <= 0 || burst <= 0 {
		return time.Second
	}
	seconds := math.Ceil((float64(burst) / rate) * 2)
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

func refillDelay(needed, rate float64) time.Duration {
	if needed <= 0 || rate <= 0 {
		return 0
	}
	return time.Duration(needed / rate * float64(time.Second))
}

func toInt64(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case string:
		n, _ := strconv.ParseInt(val, 10, 64)
		return n
	default:
		return 0
	}
}
