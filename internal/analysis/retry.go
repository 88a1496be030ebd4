package analysis

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy is an exponential backoff: the n-th retry waits
// BaseDelay * BackoffFactor^(n-1), capped at MaxDelay.
type RetryPolicy struct {
	MaxRetries    int
	BaseDelay     time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryPolicy returns three retries from 500ms doubling up to 10s.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:    3,
		BaseDelay:     500 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}
}

// backoff returns a fresh go-retry Backoff. Each call has its own state.
func (p RetryPolicy) backoff() retry.Backoff {
	factor := p.BackoffFactor
	if factor < 1 {
		factor = 1
	}
	delay := p.BaseDelay

	var b retry.Backoff = retry.BackoffFunc(func() (time.Duration, bool) {
		d := delay
		delay = time.Duration(float64(delay) * factor)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
		return d, false
	})
	if p.MaxDelay > 0 {
		b = retry.WithCappedDuration(p.MaxDelay, b)
	}

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return retry.WithMaxRetries(uint64(retries), b)
}
