package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lukemcguire/linkaudit/result"
)

var (
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	warningStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	pageStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	categoryStyle = lipgloss.NewStyle().Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
	urlStyle      = lipgloss.NewStyle()
)

// categoryOrder defines the display order for error categories (most to least actionable).
var categoryOrder = []result.ErrorCategory{
	result.Category4xx,
	result.Category5xx,
	result.CategoryTimeout,
	result.CategoryDNSFailure,
	result.CategoryConnectionRefused,
	result.CategoryRedirectLoop,
	result.CategoryUnknown,
}

// RenderSummary produces a Lip Gloss styled rendering of an audit report.
func RenderSummary(rep *result.Report) string {
	if rep == nil {
		return errorStyle.Render("No results available.")
	}

	var builder strings.Builder

	if rep.Alerts == nil || rep.Alerts.Len() == 0 {
		builder.WriteString(successStyle.Render("No broken links reported!"))
		builder.WriteString("\n")
	} else {
		for _, page := range rep.Alerts.Pages() {
			bucket, _ := rep.Alerts.Get(page)
			builder.WriteString(pageStyle.Render("Found on page: " + page))
			builder.WriteString("\n")
			for _, a := range bucket.Errors {
				builder.WriteString(fmt.Sprintf("  %s %s -> %s\n", errorStyle.Render("Error"), a.Error, urlStyle.Render(a.URL)))
			}
			for _, a := range bucket.Warnings {
				builder.WriteString(fmt.Sprintf("  %s %s -> %s\n", warningStyle.Render("Warning"), a.Error, urlStyle.Render(a.URL)))
			}
			builder.WriteString("\n")
		}

		if rows := categoryRows(rep.Alerts); len(rows) > 0 {
			catTable := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("Category", "Errors", "Warnings").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					if col == 0 {
						return categoryStyle
					}
					return urlStyle
				}).
				Rows(rows...)
			builder.WriteString(catTable.Render())
			builder.WriteString("\n")
		}
	}

	for _, line := range result.SummaryLines(rep.Stats) {
		builder.WriteString(dimStyle.Render(line))
		builder.WriteString("\n")
	}
	if rep.HasError {
		builder.WriteString(errorStyle.Render("Audit failed: errors were reported"))
	} else {
		builder.WriteString(successStyle.Render("Audit passed"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// categoryRows counts remaining alerts per error category.
func categoryRows(alerts *result.AlertMap) [][]string {
	errCounts := make(map[result.ErrorCategory]int)
	warnCounts := make(map[result.ErrorCategory]int)
	for _, page := range alerts.Pages() {
		bucket, _ := alerts.Get(page)
		for _, a := range bucket.Errors {
			errCounts[result.CategorizeError(a.Error)]++
		}
		for _, a := range bucket.Warnings {
			warnCounts[result.CategorizeError(a.Error)]++
		}
	}

	rows := make([][]string, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		if errCounts[cat] == 0 && warnCounts[cat] == 0 {
			continue
		}
		rows = append(rows, []string{
			result.FormatCategory(cat),
			fmt.Sprintf("%d", errCounts[cat]),
			fmt.Sprintf("%d", warnCounts[cat]),
		})
	}
	return rows
}
