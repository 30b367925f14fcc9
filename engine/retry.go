package engine

import "time"

// RetryPolicy controls retry behavior for capability calls that are allowed
// to fail transiently (campaign sends, agent fallbacks).
type RetryPolicy struct {
	MaxRetries int
	Delay      time.Duration
}

// Normalized fills in campaign defaults: 3 attempts, 5s base delay.
func (p RetryPolicy) Normalized() RetryPolicy {
	q := p
	if q.MaxRetries <= 0 {
		q.MaxRetries = 3
	}
	if q.Delay <= 0 {
		q.Delay = 5 * time.Second
	}
	return q
}

// Backoff returns the delay before/after a given attempt: Delay x 2^attempt.
// No jitter: callers depend on the exact schedule.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	d := p.Delay
	for i := 0; i < attempt; i++ {
		d *= 2
	}
	return d
}
