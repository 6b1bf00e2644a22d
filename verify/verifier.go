package verify

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/lukemcguire/linkaudit/result"
	"github.com/lukemcguire/linkaudit/urlutil"
)

// Summary reports what a verification pass did.
type Summary struct {
	Retried  int           // Distinct links probed
	Cleared  int           // Probed links found reachable
	Duration time.Duration // Wall time of the pass
}

// Verifier re-checks eligible alerts and removes the ones that pass.
type Verifier struct {
	policy     Policy
	prober     Prober
	log        *logrus.Logger
	progressCh chan<- result.Event
}

// New creates a Verifier. A nil prober probes over HTTP with the policy's
// timeout and user agent. The progressCh parameter is optional.
func New(policy Policy, prober Prober, log *logrus.Logger, progressCh chan<- result.Event) *Verifier {
	defaults := DefaultPolicy()
	if policy.Concurrency <= 0 {
		policy.Concurrency = defaults.Concurrency
	}
	if policy.Timeout <= 0 {
		policy.Timeout = defaults.Timeout
	}
	if policy.UserAgent == "" {
		policy.UserAgent = defaults.UserAgent
	}
	if prober == nil {
		prober = NewHTTPProber(&http.Client{}, policy.Timeout, policy.UserAgent)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Verifier{
		policy:     policy,
		prober:     prober,
		log:        log,
		progressCh: progressCh,
	}
}

// Candidates returns the distinct, probeable link URLs in alerts whose error
// text is eligible under policy, in first-seen order.
func Candidates(alerts *result.AlertMap, policy Policy) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, page := range alerts.Pages() {
		b, _ := alerts.Get(page)
		for _, group := range [][]result.Alert{b.Errors, b.Warnings} {
			for _, a := range group {
				if seen[a.URL] || !policy.Eligible(a.Error) || !urlutil.IsHTTPScheme(a.URL) {
					continue
				}
				seen[a.URL] = true
				urls = append(urls, a.URL)
			}
		}
	}
	return urls
}

// Verify probes every candidate in alerts and removes the alerts of links
// that turned out reachable. Pages left without alerts are dropped.
func (v *Verifier) Verify(ctx context.Context, alerts *result.AlertMap) Summary {
	start := time.Now()

	candidates := Candidates(alerts, v.policy)
	outcomes := v.ProbeAll(ctx, candidates)
	cleared := Reconcile(candidates, outcomes)
	removed := alerts.Remove(cleared)

	summary := Summary{
		Retried:  len(candidates),
		Cleared:  len(cleared),
		Duration: time.Since(start),
	}
	v.log.WithFields(logrus.Fields{
		"retried":  summary.Retried,
		"cleared":  summary.Cleared,
		"removed":  removed,
		"duration": summary.Duration.Round(time.Millisecond),
	}).Debug("verification finished")
	return summary
}

// ProbeAll probes urls with at most Policy.Concurrency probes in flight and
// returns once every probe has settled. outcomes[i] belongs to urls[i].
func (v *Verifier) ProbeAll(ctx context.Context, urls []string) []ProbeOutcome {
	outcomes := make([]ProbeOutcome, len(urls))
	if len(urls) == 0 {
		return outcomes
	}

	var group errgroup.Group
	group.SetLimit(v.policy.Concurrency)
	done := atomic.NewInt64(0)

	for i, rawURL := range urls {
		i, rawURL := i, rawURL
		group.Go(func() error {
			outcome := v.prober.Probe(ctx, rawURL)
			outcomes[i] = outcome

			if !outcome.OK {
				v.log.WithFields(logrus.Fields{
					"url":    rawURL,
					"status": outcome.StatusCode,
				}).WithError(outcome.Err).Debug("probe did not clear link")
			}

			evt := result.Event{
				Phase: result.PhaseVerify,
				URL:   rawURL,
				Done:  int(done.Inc()),
				Total: len(urls),
				OK:    outcome.OK,
			}
			if outcome.Err != nil {
				evt.Error = outcome.Err.Error()
			}
			v.emit(evt)
			// A failed probe leaves its alert in place and never cancels siblings.
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// Reconcile returns the candidates cleared by a successful probe. A probe is
// matched by the origin of its redirect chain; origins that are not exactly
// one of the candidates clear nothing.
func Reconcile(candidates []string, outcomes []ProbeOutcome) map[string]struct{} {
	wanted := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		wanted[c] = struct{}{}
	}

	cleared := make(map[string]struct{})
	for _, o := range outcomes {
		if !o.OK {
			continue
		}
		if _, ok := wanted[o.Origin()]; ok {
			cleared[o.Origin()] = struct{}{}
		}
	}
	return cleared
}

func (v *Verifier) emit(evt result.Event) {
	if v.progressCh != nil {
		v.progressCh <- evt
	}
}
