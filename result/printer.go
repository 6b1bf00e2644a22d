package result

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// PrintReport writes the per-page alert listing and run statistics to w.
func PrintReport(w io.Writer, rep *Report) {
	writef := func(format string, a ...any) { _, _ = fmt.Fprintf(w, format, a...) }

	writef("\n")
	if rep.Alerts != nil {
		for _, page := range rep.Alerts.Pages() {
			b, _ := rep.Alerts.Get(page)
			heading := "Found on page: " + page
			writef("%s\n%s\n", heading, strings.Repeat("=", len(heading)))
			for _, a := range b.Errors {
				writef("Error %s -> %s\n", a.Error, a.URL)
			}
			for _, a := range b.Warnings {
				writef("Warning %s -> %s\n", a.Error, a.URL)
			}
			writef("\n")
		}
	}
	for _, line := range SummaryLines(rep.Stats) {
		writef("%s\n", line)
	}
}

// SummaryLines returns the statistics lines printed after the alert listing.
func SummaryLines(stats Stats) []string {
	lines := []string{
		fmt.Sprintf("Checked %d links in %s", stats.LinksChecked, stats.CrawlDuration.Round(time.Millisecond)),
	}
	if stats.RetryEnabled {
		lines = append(lines, fmt.Sprintf("Retried %d links, cleared %d in %s",
			stats.Retried, stats.Cleared, stats.RetryDuration.Round(time.Millisecond)))
	}
	return lines
}
