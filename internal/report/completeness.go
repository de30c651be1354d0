package report

import (
	"strings"

	"assetmirror/internal/catalog"
)

// Bucket classifies an asset by how many offered formats are held locally.
type Bucket int

const (
	BucketHave Bucket = iota
	BucketMissing
	BucketNeed
)

// Classify buckets an asset: all offered formats held is have, some is
// missing, none is need. An asset offering nothing counts as have.
func Classify(asset *catalog.Asset) Bucket {
	count, have := asset.Completeness()
	switch {
	case count == have:
		return BucketHave
	case have > 0:
		return BucketMissing
	default:
		return BucketNeed
	}
}

// CompletenessLine is one asset in the completeness report.
type CompletenessLine struct {
	Placement catalog.Placement
	Missing   []catalog.Format
}

// String renders "type > category > name", annotated with missing formats
// for partial assets.
func (l CompletenessLine) String() string {
	var b strings.Builder
	b.WriteString(l.Placement.Type.Name)
	b.WriteString(" > ")
	b.WriteString(l.Placement.Category.Name)
	b.WriteString(" > ")
	b.WriteString(l.Placement.Asset.Name)
	if len(l.Missing) > 0 {
		b.WriteString(" : missing formats ")
		b.WriteString(catalog.JoinFormats(l.Missing))
	}
	return b.String()
}

// Completeness holds the three buckets in taxonomy order.
type Completeness struct {
	Have    []CompletenessLine
	Missing []CompletenessLine
	Need    []CompletenessLine
}

// BuildCompleteness buckets every asset accepted by include (all when nil).
func BuildCompleteness(tax *catalog.Taxonomy, include func(catalog.Placement) bool) Completeness {
	var c Completeness
	tax.Walk(func(p catalog.Placement) bool {
		if include != nil && !include(p) {
			return true
		}
		line := CompletenessLine{Placement: p}
		switch Classify(p.Asset) {
		case BucketHave:
			c.Have = append(c.Have, line)
		case BucketMissing:
			line.Missing = p.Asset.MissingFormats()
			c.Missing = append(c.Missing, line)
		default:
			c.Need = append(c.Need, line)
		}
		return true
	})
	return c
}

// Sections renders the buckets for the AssetCountReport.
func (c Completeness) Sections() []Section {
	return []Section{
		{Title: "Have assets", Lines: lines(c.Have)},
		{Title: "Missing assets", Lines: lines(c.Missing)},
		{Title: "Needed assets", Lines: lines(c.Need)},
	}
}

func lines(items []CompletenessLine) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}
