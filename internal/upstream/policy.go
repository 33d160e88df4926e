package upstream

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeDegraded = "degraded"
)

// Policy describes how calls to one external dependency fail.
//
// With Degrade unset, the last error is returned to the caller. With Degrade
// set, the error is logged and the caller's fallback value is returned
// instead.
type Policy struct {
	Name            string
	MaxAttempts     uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Degrade         bool
}

// Recorder counts upstream call outcomes.
type Recorder interface {
	RecordUpstreamCall(ctx context.Context, dependency, outcome string)
}

type Runner struct {
	policy   Policy
	log      *zap.Logger
	recorder Recorder
}

func NewRunner(policy Policy, log *zap.Logger, recorder Recorder) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	if policy.MaxAttempts == 0 {
		policy.MaxAttempts = 1
	}
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = 200 * time.Millisecond
	}
	if policy.MaxInterval <= 0 {
		policy.MaxInterval = 2 * time.Second
	}
	return &Runner{
		policy:   policy,
		log:      log.With(zap.String("dependency", policy.Name)),
		recorder: recorder,
	}
}

func (r *Runner) Policy() Policy {
	return r.policy
}

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// Call runs op under the runner's policy.
func Call[T any](ctx context.Context, r *Runner, fallback T, op func(context.Context) (T, error)) (T, error) {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.policy.InitialInterval
	exp.MaxInterval = r.policy.MaxInterval

	attempt := 0
	result, err := backoff.Retry(ctx, func() (T, error) {
		attempt++
		out, err := op(ctx)
		if err != nil && ctx.Err() != nil {
			return out, backoff.Permanent(err)
		}
		return out, err
	},
		backoff.WithBackOff(exp),
		backoff.WithMaxTries(r.policy.MaxAttempts),
		backoff.WithNotify(func(err error, next time.Duration) {
			r.log.Debug("upstream call failed, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("next", next),
				zap.Error(err),
			)
		}),
	)

	if err == nil {
		r.record(ctx, OutcomeSuccess)
		return result, nil
	}

	if r.policy.Degrade {
		r.record(ctx, OutcomeDegraded)
		r.log.Warn("upstream call degraded to fallback",
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return fallback, nil
	}

	r.record(ctx, OutcomeError)
	var zero T
	return zero, err
}

func (r *Runner) record(ctx context.Context, outcome string) {
	if r.recorder == nil {
		return
	}
	r.recorder.RecordUpstreamCall(ctx, r.policy.Name, outcome)
}

// IsTimeout reports whether err came from a deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
