package ratelimit

import (
	redis "github.com/redis/go-redis/v9"
	"github.com/smallbiznis/invoicefill/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const redisKeyPrefix = "invoicefill:ratelimit:"

var Module = fx.Module("rate.limit",
	fx.Provide(NewLimiter),
)

type LimiterParam struct {
	fx.In

	Cfg   config.Config
	Log   *zap.Logger
	Redis *redis.Client `optional:"true"`
}

// NewLimiter returns nil when rate limiting is disabled. A configured Redis
// client gives a limit shared across replicas.
func NewLimiter(p LimiterParam) Limiter {
	cfg := p.Cfg.RateLimit
	log := p.Log.Named("ratelimit")
	if !cfg.Enabled() {
		log.Info("rate limiting disabled")
		return nil
	}
	if p.Redis != nil {
		log.Info("rate limiting via redis", zap.Float64("rps", cfg.RPS), zap.Int("burst", cfg.Burst))
		return NewTokenBucket(p.Redis, cfg.RPS, cfg.Burst, redisKeyPrefix)
	}
	log.Info("rate limiting in process", zap.Float64("rps", cfg.RPS), zap.Int("burst", cfg.Burst))
	return NewLocalLimiter(cfg.RPS, cfg.Burst)
}
