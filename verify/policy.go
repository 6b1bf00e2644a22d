// Package verify re-checks flagged links with an independent HTTP probe and
// clears alerts for links that turn out to be reachable. Crawlers are often
// blocked by sites that serve ordinary clients fine; probing filters those
// false positives out.
package verify

import (
	"strings"
	"time"

	"github.com/lukemcguire/linkaudit/result"
)

// Policy decides which alerts are re-verified and how probes are run.
type Policy struct {
	Codes       []string      // Codes that usually mean the crawler was blocked
	Phrases     []string      // Lowercase substrings of transient failure messages
	Concurrency int           // Maximum probes in flight
	Timeout     time.Duration // Per-probe timeout
	UserAgent   string        // Identifying header sent with every probe
}

// DefaultUserAgent identifies probe requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; linkaudit/1.0; +https://github.com/lukemcguire/linkaudit)"

// DefaultPolicy returns the built-in retry policy: 100 concurrent probes with
// a 30s timeout, retrying block-style status codes and transient network
// failures.
func DefaultPolicy() Policy {
	return Policy{
		Codes: []string{"403", "429", "999"},
		Phrases: []string{
			"not found",
			"no such host",
			"server misbehaving",
			"timeout",
			"deadline exceeded",
			"connection closed",
			"connection reset",
			"eof",
		},
		Concurrency: 100,
		Timeout:     30 * time.Second,
		UserAgent:   DefaultUserAgent,
	}
}

// Eligible reports whether an alert with errorText should be re-verified.
// Codes are compared exactly; phrases match case-insensitively anywhere in
// the text.
func (p Policy) Eligible(errorText string) bool {
	code := result.ErrorCode(errorText)
	for _, c := range p.Codes {
		if code == c {
			return true
		}
	}
	lower := strings.ToLower(errorText)
	for _, phrase := range p.Phrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return true
		}
	}
	return false
}
