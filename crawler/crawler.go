// Package crawler runs the external muffet link checker against a website
// and decodes its JSON report. Undecodable output is retried with backoff;
// a crawler that cannot be started is a setup failure and is not retried.
package crawler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkaudit/result"
)

// Config holds crawl runner configuration.
type Config struct {
	Binary      string        // Path to the crawler executable
	Timeout     time.Duration // Per-request timeout handed to the crawler (default 30s)
	BufferSize  int           // HTTP header buffer size handed to the crawler (default 8192)
	ExtraArgs   []string      // Additional crawler flags, passed verbatim before the URL
	RetryPolicy RetryPolicy   // Retry behavior for undecodable output
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(binary string) Config {
	return Config{
		Binary:      binary,
		Timeout:     30 * time.Second,
		BufferSize:  8192,
		RetryPolicy: DefaultRetryPolicy(),
	}
}

// Runner invokes the crawler and decodes its report.
type Runner struct {
	cfg        Config
	command    CommandFunc
	log        *logrus.Logger
	progressCh chan<- result.Event
}

// New creates a Runner with the given configuration.
// The progressCh parameter is optional; pass nil to disable progress events.
func New(cfg Config, log *logrus.Logger, progressCh chan<- result.Event) *Runner {
	defaults := DefaultConfig(cfg.Binary)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.RetryPolicy.MaxAttempts <= 0 {
		cfg.RetryPolicy = defaults.RetryPolicy
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		cfg:        cfg,
		command:    execCommand,
		log:        log,
		progressCh: progressCh,
	}
}

// WithCommand replaces the function used to execute the crawler.
func (r *Runner) WithCommand(fn CommandFunc) *Runner {
	r.command = fn
	return r
}

// Timeout returns the per-request timeout the crawler runs with.
func (r *Runner) Timeout() time.Duration {
	return r.cfg.Timeout
}

// Args returns the crawler command line for targetURL, excluding the binary.
func (r *Runner) Args(targetURL string) []string {
	args := []string{
		"--timeout=" + strconv.Itoa(int(r.cfg.Timeout.Seconds())),
		"--buffer-size=" + strconv.Itoa(r.cfg.BufferSize),
		"--format=json",
	}
	args = append(args, r.cfg.ExtraArgs...)
	return append(args, targetURL)
}

// Run crawls targetURL and returns the decoded report together with the
// duration of the successful invocation.
func (r *Runner) Run(ctx context.Context, targetURL string) (Report, time.Duration, error) {
	policy := r.cfg.RetryPolicy
	args := r.Args(targetURL)
	backoff := policy.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, 0, fmt.Errorf("crawl %s: %w", targetURL, ctx.Err())
			case <-time.After(backoff):
				backoff = min(backoff*2, policy.MaxDelay)
			}
		}

		r.emit(result.Event{
			Phase:       result.PhaseCrawl,
			URL:         targetURL,
			Attempt:     attempt,
			MaxAttempts: policy.MaxAttempts,
		})

		start := time.Now()
		out, err := r.command(ctx, r.cfg.Binary, args...)
		elapsed := time.Since(start)
		if err != nil {
			return nil, 0, err
		}

		report, decodeErr := Decode(out)
		if decodeErr == nil {
			r.log.WithFields(logrus.Fields{
				"url":      targetURL,
				"attempt":  attempt,
				"pages":    len(report),
				"duration": elapsed.Round(time.Millisecond),
			}).Debug("crawl finished")
			return report, elapsed, nil
		}

		lastErr = decodeErr
		r.log.WithFields(logrus.Fields{
			"url":     targetURL,
			"attempt": attempt,
			"of":      policy.MaxAttempts,
		}).WithError(decodeErr).Warn("crawler output could not be decoded")
		r.emit(result.Event{
			Phase:       result.PhaseCrawl,
			URL:         targetURL,
			Attempt:     attempt,
			MaxAttempts: policy.MaxAttempts,
			Error:       decodeErr.Error(),
		})
	}

	return nil, 0, &ParseError{Attempts: policy.MaxAttempts, Err: lastErr}
}

func (r *Runner) emit(evt result.Event) {
	if r.progressCh != nil {
		r.progressCh <- evt
	}
}
