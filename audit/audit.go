// Package audit runs the full link audit: crawl, classify and, when enabled,
// re-verify flagged links.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lukemcguire/linkaudit/classify"
	"github.com/lukemcguire/linkaudit/crawler"
	"github.com/lukemcguire/linkaudit/result"
	"github.com/lukemcguire/linkaudit/verify"
)

// CrawlRunner produces the crawl report for a target URL.
type CrawlRunner interface {
	Run(ctx context.Context, targetURL string) (crawler.Report, time.Duration, error)
}

// LinkVerifier re-checks alerts and removes the ones that pass.
type LinkVerifier interface {
	Verify(ctx context.Context, alerts *result.AlertMap) verify.Summary
}

// Auditor wires the pipeline stages together.
type Auditor struct {
	targetURL string
	rules     classify.Rules
	runner    CrawlRunner
	verifier  LinkVerifier
	log       *logrus.Logger
}

// New creates an Auditor. Pass a nil verifier to skip re-verification.
func New(targetURL string, rules classify.Rules, runner CrawlRunner, verifier LinkVerifier, log *logrus.Logger) *Auditor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Auditor{
		targetURL: targetURL,
		rules:     rules,
		runner:    runner,
		verifier:  verifier,
		log:       log,
	}
}

// Run executes the audit. Report.HasError reflects the classification before
// re-verification and is not lowered when verification clears every error.
func (a *Auditor) Run(ctx context.Context) (*result.Report, error) {
	report, crawlDuration, err := a.runner.Run(ctx, a.targetURL)
	if err != nil {
		return nil, fmt.Errorf("crawl %s: %w", a.targetURL, err)
	}

	alerts, hasError := classify.Classify(report, a.rules)
	a.log.WithFields(logrus.Fields{
		"pages":     len(report),
		"flagged":   alerts.Len(),
		"has_error": hasError,
		"errors":    a.rules.Errors.String(),
		"warnings":  a.rules.Warnings.String(),
	}).Debug("classified crawl report")

	rep := &result.Report{
		Alerts:   alerts,
		HasError: hasError,
		Stats: result.Stats{
			LinksChecked:  classify.CountLinks(report),
			CrawlDuration: crawlDuration,
		},
	}

	if a.verifier != nil {
		summary := a.verifier.Verify(ctx, alerts)
		rep.Stats.RetryEnabled = true
		rep.Stats.Retried = summary.Retried
		rep.Stats.Cleared = summary.Cleared
		rep.Stats.RetryDuration = summary.Duration
	}

	return rep, nil
}
