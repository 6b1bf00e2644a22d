package result

import (
	"bytes"
	"testing"
	"time"
)

func TestPrintReport_NoAlerts(t *testing.T) {
	var buf bytes.Buffer
	rep := &Report{
		Alerts: NewAlertMap(),
		Stats:  Stats{LinksChecked: 10, CrawlDuration: time.Second},
	}

	PrintReport(&buf, rep)

	got := buf.String()
	want := "\nChecked 10 links in 1s\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintReport_WithAlerts(t *testing.T) {
	alerts := NewAlertMap()
	alerts.Bucket("https://example.com/").AddWarning(Alert{URL: "https://example.com/slow", Error: "429"})
	alerts.Bucket("https://example.com/").AddError(Alert{URL: "https://example.com/dead", Error: "404"})
	alerts.Bucket("https://example.com/about").AddError(Alert{URL: "https://gone.example", Error: "dial tcp: lookup gone.example: no such host"})

	var buf bytes.Buffer
	PrintReport(&buf, &Report{
		Alerts:   alerts,
		HasError: true,
		Stats: Stats{
			LinksChecked:  50,
			CrawlDuration: 1500 * time.Millisecond,
			RetryEnabled:  true,
			Retried:       2,
			Cleared:       0,
			RetryDuration: 250 * time.Millisecond,
		},
	})

	want := "\n" +
		"Found on page: https://example.com/\n" +
		"===================================\n" +
		"Error 404 -> https://example.com/dead\n" +
		"Warning 429 -> https://example.com/slow\n" +
		"\n" +
		"Found on page: https://example.com/about\n" +
		"========================================\n" +
		"Error dial tcp: lookup gone.example: no such host -> https://gone.example\n" +
		"\n" +
		"Checked 50 links in 1.5s\n" +
		"Retried 2 links, cleared 0 in 250ms\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestSummaryLines_RetryDisabled(t *testing.T) {
	lines := SummaryLines(Stats{LinksChecked: 3, CrawlDuration: 2 * time.Second, Retried: 5})
	if len(lines) != 1 {
		t.Fatalf("expected 1 summary line, got %d: %v", len(lines), lines)
	}
	if lines[0] != "Checked 3 links in 2s" {
		t.Errorf("unexpected summary line %q", lines[0])
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(true); got != 1 {
		t.Errorf("ExitCode(true) = %d, want 1", got)
	}
	if got := ExitCode(false); got != 0 {
		t.Errorf("ExitCode(false) = %d, want 0", got)
	}
}
