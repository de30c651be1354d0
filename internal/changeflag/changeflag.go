// Package changeflag owns the per-slot "changed since last local fetch"
// state of an asset.
//
// A slot's flag is raised only when a previously known, non-empty URL is
// replaced by a different one; a first sighting never raises it. Flags are
// never lowered here. The fetch stage clears them once the slot file has been
// re-downloaded.
package changeflag

import (
	"path/filepath"
	"strings"
	"time"

	"assetmirror/internal/catalog"
)

// ArchiveLayout is the timestamp suffix applied to superseded slot files.
const ArchiveLayout = "20060102-150405"

// Apply stores newURL in slot when it is non-empty and differs from the
// stored value. It reports whether the stored URL changed.
func Apply(asset *catalog.Asset, slot catalog.ImageSlot, newURL string) bool {
	newURL = strings.TrimSpace(newURL)
	if newURL == "" || asset.Images[slot] == newURL {
		return false
	}
	if asset.Images[slot] != "" {
		asset.ImageChanged[slot] = true
	}
	asset.Images[slot] = newURL
	return true
}

// DetailImage is one background image found on an asset's detail page.
type DetailImage struct {
	URL   string
	Class string
}

// Mapping is the slot assignment derived from a detail page.
type Mapping struct {
	Slots map[catalog.ImageSlot]string
	// Seen counts the non-preview images considered, including variants
	// beyond the tracked slots.
	Seen int
}

// MapDetailImages applies the positional convention of detail pages: the
// preview image is skipped, the first image whose class contains marker is
// the details image and the Nth other image is variant N. Variants past the
// last tracked slot are dropped.
func MapDetailImages(previewURL string, images []DetailImage, marker string) Mapping {
	m := Mapping{Slots: make(map[catalog.ImageSlot]string, catalog.SlotCount)}
	variant := 0
	haveDetails := false
	for _, img := range images {
		if img.URL == "" || img.URL == previewURL {
			continue
		}
		m.Seen++
		if marker != "" && strings.Contains(img.Class, marker) {
			if !haveDetails {
				m.Slots[catalog.SlotDetails] = img.URL
				haveDetails = true
			}
			continue
		}
		variant++
		if slot, ok := catalog.VariantSlot(variant); ok {
			m.Slots[slot] = img.URL
		}
	}
	return m
}

// ApplyMapping routes every mapped slot through Apply and reports whether any
// stored URL changed.
func ApplyMapping(asset *catalog.Asset, m Mapping) bool {
	changed := false
	for _, slot := range catalog.AllSlots() {
		if url, ok := m.Slots[slot]; ok && Apply(asset, slot, url) {
			changed = true
		}
	}
	return changed
}

// ArchiveName returns the name a superseded file is moved to before its
// replacement is written: dir/stem_YYYYMMDD-HHMMSS.ext.
func ArchiveName(path string, now time.Time) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, stem+"_"+now.Format(ArchiveLayout)+ext)
}
