package scrape

import "fmt"

// Summary counts what a pass did. It is returned even when the pass fails.
type Summary struct {
	NewTypes          int
	NewCategories     int
	UpdatedTaxonomy   int
	Created           int
	Updated           int
	Unchanged         int
	Skipped           int
	Placeholders      int
	Abandoned         int
	DetailsRecorded   int
	DetailsEmpty      int
	DetailsFailed     int
	AbandonedCategory []string
}

// Row is one label/value pair for console summaries.
type Row struct {
	Label string
	Value string
}

// Rows renders the non-zero counters in a stable order.
func (s Summary) Rows() []Row {
	counters := []struct {
		label string
		value int
	}{
		{"new asset types", s.NewTypes},
		{"new categories", s.NewCategories},
		{"taxonomy urls updated", s.UpdatedTaxonomy},
		{"assets created", s.Created},
		{"assets updated", s.Updated},
		{"assets unchanged", s.Unchanged},
		{"entries skipped", s.Skipped},
		{"lazy placeholders", s.Placeholders},
		{"categories abandoned", s.Abandoned},
		{"detail pages recorded", s.DetailsRecorded},
		{"detail pages empty", s.DetailsEmpty},
		{"detail pages failed", s.DetailsFailed},
	}
	rows := make([]Row, 0, len(counters))
	for _, c := range counters {
		if c.value == 0 {
			continue
		}
		rows = append(rows, Row{Label: c.label, Value: fmt.Sprintf("%d", c.value)})
	}
	return rows
}
