package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-critique/internal/config"
)

// RetryPolicy bounds one critique request: every attempt gets RequestTimeout,
// and transient failures are retried at most MaxRetries times.
type RetryPolicy struct {
	RequestTimeout time.Duration
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		RequestTimeout: 90 * time.Second,
		MaxRetries:     1,
		BaseDelay:      time.Second,
		MaxDelay:       30 * time.Second,
	}
}

// RetryPolicyFromConfig fills zero values from DefaultRetryPolicy.
func RetryPolicyFromConfig(cfg config.LLMConfig) RetryPolicy {
	p := DefaultRetryPolicy()
	if cfg.RequestTimeout > 0 {
		p.RequestTimeout = cfg.RequestTimeout
	}
	if cfg.MaxRetries >= 0 {
		p.MaxRetries = cfg.MaxRetries
	}
	if cfg.RetryBaseDelay > 0 {
		p.BaseDelay = cfg.RetryBaseDelay
	}
	if cfg.RetryMaxDelay > 0 {
		p.MaxDelay = cfg.RetryMaxDelay
	}
	return p
}

// Backoff returns the delay before retry number n (zero based).
func (p RetryPolicy) Backoff(n int) time.Duration {
	delay := p.BaseDelay
	for i := 0; i < n && delay < p.MaxDelay; i++ {
		delay *= 2
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
