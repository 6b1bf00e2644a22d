package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukemcguire/linkaudit/crawler"
	"github.com/lukemcguire/linkaudit/result"
)

func TestParseSelector(t *testing.T) {
	assert.True(t, ParseSelector(nil).IsEmpty())
	assert.True(t, ParseSelector([]string{}).IsEmpty())
	assert.True(t, ParseSelector([]string{"all"}).IsAll())
	assert.True(t, ParseSelector([]string{"all", "404"}).IsAll())

	s := ParseSelector([]string{"404", "403"})
	assert.False(t, s.IsAll())
	assert.True(t, s.Contains("404"))
	assert.True(t, s.Contains("403"))
	assert.Equal(t, "403,404", s.String())
	assert.Equal(t, "all", All().String())
}

func TestSelector_ExactMatchOnly(t *testing.T) {
	s := Codes("40", "timeout")
	assert.False(t, s.Contains("404"))
	assert.False(t, s.Contains("4"))
	assert.True(t, s.Contains("40"))
	assert.False(t, s.Contains("timeouts"))
	assert.False(t, All().Contains("404"), "wildcard does not claim codes by membership")
	assert.True(t, All().Matches("404"))
}

func TestRules_Severity(t *testing.T) {
	tests := []struct {
		name  string
		rules Rules
		code  string
		want  Severity
	}{
		{"all errors", Rules{Errors: All()}, "404", Error},
		{"all errors excludes explicit warning", Rules{Errors: All(), Warnings: Codes("429")}, "429", Warning},
		{"all errors with all warnings", Rules{Errors: All(), Warnings: All()}, "429", Error},
		{"explicit error", Rules{Errors: Codes("404")}, "404", Error},
		{"explicit error wins over explicit warning", Rules{Errors: Codes("404"), Warnings: Codes("404")}, "404", Error},
		{"explicit error wins over all warnings", Rules{Errors: Codes("404"), Warnings: All()}, "404", Error},
		{"all warnings", Rules{Errors: Codes("404"), Warnings: All()}, "500", Warning},
		{"explicit warning", Rules{Warnings: Codes("timeout")}, "timeout", Warning},
		{"unselected code", Rules{Errors: Codes("404"), Warnings: Codes("429")}, "500", Ignored},
		{"empty selectors", Rules{}, "404", Ignored},
		{"substring is not a match", Rules{Errors: Codes("40")}, "404", Ignored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rules.Severity(tt.code))
		})
	}
}

func TestClassify_EndToEnd(t *testing.T) {
	report := crawler.Report{
		{URL: "https://example.com/p1", Links: []crawler.Link{
			{URL: "https://example.com/missing", Error: "404"},
			{URL: "https://example.com/busy", Error: "429"},
			{URL: "https://example.com/ok"},
		}},
	}

	alerts, hasError := Classify(report, Rules{Errors: All(), Warnings: Codes("429")})
	require.True(t, hasError)
	require.Equal(t, []string{"https://example.com/p1"}, alerts.Pages())

	b, ok := alerts.Get("https://example.com/p1")
	require.True(t, ok)
	assert.Equal(t, []result.Alert{{URL: "https://example.com/missing", Error: "404"}}, b.Errors)
	assert.Equal(t, []result.Alert{{URL: "https://example.com/busy", Error: "429"}}, b.Warnings)
}

func TestClassify_CodeIsFirstToken(t *testing.T) {
	report := crawler.Report{
		{URL: "P", Links: []crawler.Link{{URL: "https://example.com/gone", Error: "404 File Not Found"}}},
	}

	alerts, hasError := Classify(report, Rules{Errors: Codes("404")})
	assert.True(t, hasError)
	b, ok := alerts.Get("P")
	require.True(t, ok)
	require.Len(t, b.Errors, 1)
	assert.Equal(t, "404 File Not Found", b.Errors[0].Error)
}

func TestClassify_PagesWithoutAlertsAreAbsent(t *testing.T) {
	report := crawler.Report{
		{URL: "healthy", Links: []crawler.Link{{URL: "a"}, {URL: "b"}}},
		{URL: "ignored", Links: []crawler.Link{{URL: "c", Error: "500"}}},
		{URL: "flagged", Links: []crawler.Link{{URL: "d", Error: "429"}}},
	}

	alerts, hasError := Classify(report, Rules{Errors: Codes("404"), Warnings: Codes("429")})
	assert.False(t, hasError, "warnings never set hasError")
	assert.Equal(t, []string{"flagged"}, alerts.Pages())
}

func TestClassify_EmptySelectorsShowNothing(t *testing.T) {
	report := crawler.Report{
		{URL: "p", Links: []crawler.Link{{URL: "a", Error: "404"}, {URL: "b", Error: "timeout"}}},
	}

	alerts, hasError := Classify(report, Rules{})
	assert.False(t, hasError)
	assert.Equal(t, 0, alerts.Len())
}

func TestClassify_PageOrderFollowsReport(t *testing.T) {
	report := crawler.Report{
		{URL: "z", Links: []crawler.Link{{URL: "1", Error: "404"}}},
		{URL: "a", Links: []crawler.Link{{URL: "2", Error: "404"}}},
		{URL: "m", Links: []crawler.Link{{URL: "3", Error: "404"}}},
	}

	alerts, _ := Classify(report, Rules{Errors: All()})
	assert.Equal(t, []string{"z", "a", "m"}, alerts.Pages())
}

func TestClassify_Idempotent(t *testing.T) {
	report := crawler.Report{
		{URL: "p1", Links: []crawler.Link{{URL: "a", Error: "404"}, {URL: "b", Error: "429"}}},
		{URL: "p2", Links: []crawler.Link{{URL: "a", Error: "404"}, {URL: "c", Error: "timeout"}}},
	}
	rules := Rules{Errors: Codes("404"), Warnings: All()}

	first, firstErr := Classify(report, rules)
	second, secondErr := Classify(report, rules)

	assert.Equal(t, firstErr, secondErr)
	assert.Equal(t, first, second)
}

func TestCountLinks(t *testing.T) {
	report := crawler.Report{
		{URL: "p1", Links: []crawler.Link{{URL: "a"}, {URL: "b", Error: "404"}}},
		{URL: "p2", Links: []crawler.Link{{URL: "a"}, {URL: "c", Error: "timeout"}}},
	}
	assert.Equal(t, 3, CountLinks(report))
	assert.Equal(t, 0, CountLinks(nil))
}
