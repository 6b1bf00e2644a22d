package classify

import (
	"github.com/lukemcguire/linkaudit/crawler"
	"github.com/lukemcguire/linkaudit/result"
)

// Severity is the outcome of classifying one link failure.
type Severity int

const (
	Ignored Severity = iota
	Error
	Warning
)

// Rules pairs the error and warning selectors of a run.
type Rules struct {
	Errors   Selector
	Warnings Selector
}

// Severity classifies a failure code. The error check runs first; the error
// wildcard leaves codes explicitly listed as warnings to the warning check.
func (r Rules) Severity(code string) Severity {
	if (r.Errors.IsAll() && !r.Warnings.Contains(code)) || r.Errors.Contains(code) {
		return Error
	}
	if r.Warnings.Matches(code) {
		return Warning
	}
	return Ignored
}

// Classify builds the per-page alert map for report. It reports whether any
// link was classified as an error.
func Classify(report crawler.Report, rules Rules) (*result.AlertMap, bool) {
	alerts := result.NewAlertMap()
	hasError := false

	for _, page := range report {
		for _, link := range page.Links {
			if link.Error == "" {
				continue
			}
			alert := result.Alert{URL: link.URL, Error: link.Error}
			switch rules.Severity(link.Code()) {
			case Error:
				alerts.Bucket(page.URL).AddError(alert)
				hasError = true
			case Warning:
				alerts.Bucket(page.URL).AddWarning(alert)
			}
		}
	}

	return alerts, hasError
}

// CountLinks returns the number of distinct link URLs in report, healthy or not.
func CountLinks(report crawler.Report) int {
	seen := make(map[string]struct{})
	for _, page := range report {
		for _, link := range page.Links {
			seen[link.URL] = struct{}{}
		}
	}
	return len(seen)
}
