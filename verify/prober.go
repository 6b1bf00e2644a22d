package verify

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// maxRedirects bounds the redirect chain a probe will follow.
const maxRedirects = 10

// ProbeOutcome is the result of probing one URL.
type ProbeOutcome struct {
	RequestedURL string   // The URL handed to the prober
	Chain        []string // URLs visited, origin first, final destination last
	StatusCode   int      // Final HTTP status (0 if unreachable)
	OK           bool     // Whether the final response was successful
	Err          error    // Transport error, if any
}

// Origin returns the first URL of the redirect chain.
func (o ProbeOutcome) Origin() string {
	if len(o.Chain) == 0 {
		return ""
	}
	return o.Chain[0]
}

// FinalURL returns the last URL of the redirect chain.
func (o ProbeOutcome) FinalURL() string {
	if len(o.Chain) == 0 {
		return ""
	}
	return o.Chain[len(o.Chain)-1]
}

// Prober checks whether a URL is reachable.
// Implementations must be safe for concurrent use and must not fail:
// unreachable URLs are reported through ProbeOutcome.
type Prober interface {
	Probe(ctx context.Context, rawURL string) ProbeOutcome
}

// HTTPProber probes URLs with headers-only HTTP requests.
type HTTPProber struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// NewHTTPProber creates an HTTPProber. A nil client uses a fresh http.Client.
func NewHTTPProber(client *http.Client, timeout time.Duration, userAgent string) *HTTPProber {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPProber{client: client, timeout: timeout, userAgent: userAgent}
}

// Probe sends a HEAD request to rawURL, falling back to GET when the server
// rejects HEAD with 405. The response body is never read.
func (p *HTTPProber) Probe(ctx context.Context, rawURL string) ProbeOutcome {
	out := ProbeOutcome{RequestedURL: rawURL}

	reqCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, chain, err := p.do(reqCtx, http.MethodHead, rawURL)
	if err == nil && resp.StatusCode == http.StatusMethodNotAllowed {
		_ = resp.Body.Close()
		resp, chain, err = p.do(reqCtx, http.MethodGet, rawURL)
	}
	out.Chain = chain
	if err != nil {
		out.Err = err
		return out
	}
	_ = resp.Body.Close()

	out.StatusCode = resp.StatusCode
	out.OK = resp.StatusCode < http.StatusBadRequest
	return out
}

// do performs one request and records every URL visited along the way.
func (p *HTTPProber) do(ctx context.Context, method, rawURL string) (*http.Response, []string, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("User-Agent", p.userAgent)

	chain := []string{req.URL.String()}
	client := *p.client
	client.CheckRedirect = func(next *http.Request, via []*http.Request) error {
		if len(via) >= maxRedirects {
			return fmt.Errorf("stopped after %d redirects", maxRedirects)
		}
		chain = append(chain, next.URL.String())
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, chain, fmt.Errorf("%s %s: %w", method, rawURL, err)
	}
	return resp, chain, nil
}
