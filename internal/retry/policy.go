package retry

import "time"

// Policy controls how delivery failures are retried: a fixed retry budget
// with linear backoff. Delays grow by DelayUnit per attempt rather than by a
// multiplier, so the default budget waits 5s, 10s, 15s.
type Policy struct {
	MaxRetries int
	DelayUnit  time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: 3,
		DelayUnit:  5 * time.Second,
	}
}

// ShouldRetry reports whether another attempt is allowed after the
// zero-based attempt number `attempt` has failed.
func (p Policy) ShouldRetry(attempt int) bool {
	return attempt < p.MaxRetries
}

// Delay returns the wait before the attempt that follows failed attempt
// `attempt`: (attempt+1) * DelayUnit.
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(attempt+1) * p.DelayUnit
}
