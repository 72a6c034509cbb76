package retry

import (
	"context"
	"math/rand"
	"time"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 50 * time.Millisecond
	DefaultMaxDelay    = 500 * time.Millisecond
	DefaultJitter      = 25 * time.Millisecond
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	// Jitter spreads each sleep by up to this much either way. Zero keeps
	// DefaultJitter; a negative value disables jitter.
	Jitter time.Duration

	// IsRetryable reports whether err is worth another attempt. Nil retries
	// every error.
	IsRetryable func(error) bool

	// OnRetry, when set, runs before each backoff sleep.
	OnRetry func(attempt int, err error, sleep time.Duration)
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		MaxDelay:    DefaultMaxDelay,
		Jitter:      DefaultJitter,
		IsRetryable: func(error) bool { return true },
	}
}

func normalizeConfig(cfg Config) Config {
	def := DefaultConfig()

	if cfg.MaxAttempts > 0 {
		def.MaxAttempts = cfg.MaxAttempts
	}
	if cfg.BaseDelay > 0 {
		def.BaseDelay = cfg.BaseDelay
	}
	if cfg.MaxDelay > 0 {
		def.MaxDelay = cfg.MaxDelay
	}
	if cfg.Jitter != 0 {
		def.Jitter = cfg.Jitter
	}
	if cfg.IsRetryable != nil {
		def.IsRetryable = cfg.IsRetryable
	}
	def.OnRetry = cfg.OnRetry

	return def
}

// Do runs fn until it succeeds, returns a non-retryable error, runs out of
// attempts, or ctx is done. The last error from fn is returned.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	cfg = normalizeConfig(cfg)

	var attempt int
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		attempt++
		err := fn()
		if err == nil {
			return nil
		}
		if attempt >= cfg.MaxAttempts || !cfg.IsRetryable(err) {
			return err
		}

		sleep := backoffDelay(cfg.BaseDelay, cfg.MaxDelay, attempt)
		if cfg.Jitter > 0 {
			sleep = applyJitter(sleep, cfg.Jitter)
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, err, sleep)
		}

		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func backoffDelay(baseDelay time.Duration, maxDelay time.Duration, attempt int) time.Duration {
	mul := 1 << (attempt - 1)
	backoff := baseDelay * time.Duration(mul)
	if backoff > maxDelay {
		return maxDelay
	}
	return backoff
}

// applyJitter moves delay by a uniform amount in [-jitter, jitter], never
// below zero.
func applyJitter(delay time.Duration, jitter time.Duration) time.Duration {
	delta := time.Duration(rand.Int63n(int64(jitter)*2+1)) - jitter
	res := delay + delta
	if res < 0 {
		return 0
	}
	return res
}
