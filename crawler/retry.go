package crawler

import "time"

// RetryPolicy configures how often an undecodable crawl is re-run.
type RetryPolicy struct {
	MaxAttempts int           // Total invocations, including the first (3 = 2 retries)
	BaseDelay   time.Duration // Initial backoff delay between invocations
	MaxDelay    time.Duration // Maximum backoff cap
}

// DefaultRetryPolicy returns a RetryPolicy with sensible defaults:
// 3 attempts, 1s base delay, 10s max delay.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   1 * time.Second,
		MaxDelay:    10 * time.Second,
	}
}
