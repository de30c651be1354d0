package scrape

import (
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/changeflag"
)

// Action is the outcome of comparing a scraped entry with the catalog.
type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	default:
		return "none"
	}
}

// Decision carries the row to write, if any.
type Decision struct {
	Action Action
	Asset  *catalog.Asset
}

// Decide compares entry with the row stored under its URL. existing is nil
// when the URL is unknown. The stored row is never mutated; updates work on
// a copy.
//
// An update happens when the preview image or the name differ, or when the
// card is badged UPDATED. A badged card against a row already waiting for a
// detail scan only updates when its format list differs, so a badge that
// stays on the listing does not rewrite the row every pass. Updates keep have_format flags and the owning category, route the
// preview through the change flags and recompute every offered format.
func Decide(existing *catalog.Asset, entry Entry, categoryID int64, now time.Time) Decision {
	if existing == nil {
		asset := &catalog.Asset{
			CategoryID:  categoryID,
			Name:        entry.Name,
			URL:         entry.URL,
			LastChange:  now,
			NeedToCheck: true,
			Formats:     entry.Formats(),
		}
		asset.Images[catalog.SlotPreview] = entry.Image
		return Decision{Action: ActionCreate, Asset: asset}
	}

	formats := entry.Formats()
	badged := entry.NeedsUpdate() && (!existing.NeedToCheck || existing.Formats != formats)
	if existing.Images[catalog.SlotPreview] == entry.Image && existing.Name == entry.Name && !badged {
		return Decision{Action: ActionNone}
	}

	updated := *existing
	updated.Name = entry.Name
	changeflag.Apply(&updated, catalog.SlotPreview, entry.Image)
	updated.Formats = formats
	updated.NeedToCheck = true
	updated.LastChange = now
	return Decision{Action: ActionUpdate, Asset: &updated}
}
