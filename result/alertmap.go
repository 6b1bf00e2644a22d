package result

// AlertMap maps page URLs to their alert buckets, iterating pages in the
// order they were first inserted.
type AlertMap struct {
	order []string
	pages map[string]*Bucket
}

// NewAlertMap returns an empty AlertMap.
func NewAlertMap() *AlertMap {
	return &AlertMap{pages: make(map[string]*Bucket)}
}

// Bucket returns the bucket for page, inserting an empty one if needed.
func (m *AlertMap) Bucket(page string) *Bucket {
	if b, ok := m.pages[page]; ok {
		return b
	}
	b := &Bucket{}
	m.pages[page] = b
	m.order = append(m.order, page)
	return b
}

// Get returns the bucket for page without inserting.
func (m *AlertMap) Get(page string) (*Bucket, bool) {
	b, ok := m.pages[page]
	return b, ok
}

// Pages returns the page URLs in insertion order.
func (m *AlertMap) Pages() []string {
	pages := make([]string, len(m.order))
	copy(pages, m.order)
	return pages
}

// Len returns the number of pages with alerts.
func (m *AlertMap) Len() int {
	return len(m.order)
}

// Links returns every alerted link URL across all pages, deduplicated and in
// first-seen order (errors before warnings within a page).
func (m *AlertMap) Links() []string {
	seen := make(map[string]bool)
	var links []string
	for _, page := range m.order {
		b := m.pages[page]
		for _, group := range [][]Alert{b.Errors, b.Warnings} {
			for _, a := range group {
				if !seen[a.URL] {
					seen[a.URL] = true
					links = append(links, a.URL)
				}
			}
		}
	}
	return links
}

// Remove deletes every alert whose link URL is in cleared, then drops pages
// left with no alerts. It returns the number of alerts removed.
func (m *AlertMap) Remove(cleared map[string]struct{}) int {
	if len(cleared) == 0 {
		return 0
	}

	removed := 0
	keep := func(alerts []Alert) []Alert {
		kept := alerts[:0]
		for _, a := range alerts {
			if _, ok := cleared[a.URL]; ok {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		return kept
	}

	order := m.order[:0]
	for _, page := range m.order {
		b := m.pages[page]
		b.Errors = keep(b.Errors)
		b.Warnings = keep(b.Warnings)
		if b.Empty() {
			delete(m.pages, page)
			continue
		}
		order = append(order, page)
	}
	m.order = order
	return removed
}
