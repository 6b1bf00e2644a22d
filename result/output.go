package result

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// pageAlerts is the JSON shape of one page in the alert map.
type pageAlerts struct {
	Page     string  `json:"page"`
	Errors   []Alert `json:"errors"`
	Warnings []Alert `json:"warnings"`
}

// WriteJSON writes the alert map as a JSON array of pages in insertion order.
func WriteJSON(w io.Writer, alerts *AlertMap) error {
	pages := make([]pageAlerts, 0, alerts.Len())
	for _, page := range alerts.Pages() {
		b, _ := alerts.Get(page)
		entry := pageAlerts{Page: page, Errors: b.Errors, Warnings: b.Warnings}
		if entry.Errors == nil {
			entry.Errors = []Alert{}
		}
		if entry.Warnings == nil {
			entry.Warnings = []Alert{}
		}
		pages = append(pages, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(pages); err != nil {
		return fmt.Errorf("write json output: %w", err)
	}
	return nil
}

// WriteCSV writes one row per alert to w.
// Always includes a header row, even if there are no alerts.
// Column order: page, severity, error, url
func WriteCSV(w io.Writer, alerts *AlertMap) error {
	cw := csv.NewWriter(w)

	header := []string{"page", "severity", "error", "url"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, page := range alerts.Pages() {
		b, _ := alerts.Get(page)
		for _, row := range bucketRows(page, b) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv record for %s: %w", row[3], err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}
	return nil
}

func bucketRows(page string, b *Bucket) [][]string {
	rows := make([][]string, 0, len(b.Errors)+len(b.Warnings))
	for _, a := range b.Errors {
		rows = append(rows, []string{page, "error", a.Error, a.URL})
	}
	for _, a := range b.Warnings {
		rows = append(rows, []string{page, "warning", a.Error, a.URL})
	}
	return rows
}
