package services

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"eventagenda/internal/domain"
)

// RetryPolicy bounds how transient store failures are retried at the service boundary.
type RetryPolicy struct {
	Attempts        int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy retries three times with exponential backoff starting at 50ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, InitialInterval: 50 * time.Millisecond, MaxInterval: time.Second}
}

// Do runs op until it succeeds, fails with a non-transient error, or the attempts run out.
// Only domain.ErrTransient failures are retried.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	b.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		err := op()
		if err == nil || domain.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(attempts-1)), ctx))
}
