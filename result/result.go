package result

import "time"

// Alert is a single flagged link as reported by the crawler.
type Alert struct {
	URL   string `json:"url"`   // The link exactly as reported
	Error string `json:"error"` // The crawler's error text
}

// Bucket holds the alerts found on one page, split by severity.
// Both slices behave as ordered sets: an identical alert is only kept once.
type Bucket struct {
	Errors   []Alert `json:"errors"`
	Warnings []Alert `json:"warnings"`
}

// AddError appends an error alert unless it is already present.
func (b *Bucket) AddError(a Alert) {
	b.Errors = appendUnique(b.Errors, a)
}

// AddWarning appends a warning alert unless it is already present.
func (b *Bucket) AddWarning(a Alert) {
	b.Warnings = appendUnique(b.Warnings, a)
}

// Empty reports whether the bucket holds no alerts at all.
func (b *Bucket) Empty() bool {
	return len(b.Errors) == 0 && len(b.Warnings) == 0
}

func appendUnique(alerts []Alert, a Alert) []Alert {
	for _, existing := range alerts {
		if existing == a {
			return alerts
		}
	}
	return append(alerts, a)
}

// Stats contains aggregate statistics for an audit run.
type Stats struct {
	LinksChecked  int           // Distinct links seen by the crawler
	CrawlDuration time.Duration // Duration of the successful crawl invocation
	RetryEnabled  bool          // Whether flagged links were re-verified
	Retried       int           // Distinct links probed during verification
	Cleared       int           // Probed links whose alerts were removed
	RetryDuration time.Duration // Time spent verifying
}

// Report is the complete output of an audit.
type Report struct {
	Alerts   *AlertMap // Remaining alerts grouped by page
	HasError bool      // Set by the initial classification, before verification
	Stats    Stats
}

// ExitCode maps the presence of errors to the process exit status.
func ExitCode(hasError bool) int {
	if hasError {
		return 1
	}
	return 0
}
