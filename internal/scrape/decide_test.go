package scrape

import (
	"testing"
	"time"

	"assetmirror/internal/catalog"
)

var scanTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func storedRow() *catalog.Asset {
	asset := &catalog.Asset{
		ID:          7,
		CategoryID:  3,
		Name:        "Red Brick",
		URL:         "u1",
		LastChange:  scanTime.Add(-24 * time.Hour),
		NeedToCheck: false,
		Formats:     catalog.FormatSetFromTokens([]string{"SBSAR"}),
	}
	asset.Images[catalog.SlotPreview] = "https://cdn/p1.png"
	asset.HaveFormats = asset.HaveFormats.With(catalog.FormatSBSAR)
	return asset
}

func TestDecideCreate(t *testing.T) {
	entry := Entry{Name: "Red Brick", URL: "u1", Image: "https://cdn/p1.png", FormatTokens: []string{"SBSAR", "FBX"}}
	d := Decide(nil, entry, 3, scanTime)
	if d.Action != ActionCreate {
		t.Fatalf("action = %v", d.Action)
	}
	a := d.Asset
	if a.CategoryID != 3 || a.URL != "u1" || !a.NeedToCheck || !a.LastChange.Equal(scanTime) {
		t.Fatalf("unexpected new row: %+v", a)
	}
	if a.Images[catalog.SlotPreview] != "https://cdn/p1.png" || a.HasChangedImages() {
		t.Fatalf("unexpected image state: %+v", a)
	}
	if a.Formats.String() != "sbsar fbx" || a.HaveFormats.Count() != 0 {
		t.Fatalf("unexpected formats: %v / %v", a.Formats, a.HaveFormats)
	}
}

func TestDecideUnchangedIsNoop(t *testing.T) {
	row := storedRow()
	entry := Entry{Name: "Red Brick", URL: "u1", Image: "https://cdn/p1.png", FormatTokens: []string{"SBSAR"}}
	if d := Decide(row, entry, 3, scanTime); d.Action != ActionNone || d.Asset != nil {
		t.Fatalf("expected no write, got %+v", d)
	}
}

func TestDecideUpdatedBadgeRecomputesFormats(t *testing.T) {
	row := storedRow()
	entry := Entry{Name: "Red Brick", URL: "u1", Image: "https://cdn/p1.png", Badges: []string{"UPDATED"}, FormatTokens: []string{"SBSAR", "FBX"}}

	d := Decide(row, entry, 3, scanTime)
	if d.Action != ActionUpdate {
		t.Fatalf("expected update for UPDATED badge, got %v", d.Action)
	}
	if !d.Asset.Formats.Has(catalog.FormatFBX) || !d.Asset.Formats.Has(catalog.FormatSBSAR) {
		t.Fatalf("formats = %v", d.Asset.Formats)
	}
	if !d.Asset.NeedToCheck || !d.Asset.LastChange.Equal(scanTime) {
		t.Fatalf("expected need_to_check and refreshed timestamp: %+v", d.Asset)
	}
	if d.Asset.HaveFormats != row.HaveFormats {
		t.Fatal("have_format flags must be left untouched")
	}
	if row.Formats.Has(catalog.FormatFBX) {
		t.Fatal("stored row must not be mutated")
	}

	// The row now waits for a detail scan, so the same badged card is a no-op.
	if again := Decide(d.Asset, entry, 3, scanTime.Add(time.Hour)); again.Action != ActionNone {
		t.Fatalf("expected second pass to be a no-op, got %v", again.Action)
	}
}

func TestDecideUpdatedBadgeOnPendingRowStoresNewFormats(t *testing.T) {
	row := storedRow()
	row.NeedToCheck = true
	entry := Entry{Name: "Red Brick", URL: "u1", Image: "https://cdn/p1.png", Badges: []string{"UPDATED"}, FormatTokens: []string{"SBSAR", "FBX"}}

	d := Decide(row, entry, 3, scanTime)
	if d.Action != ActionUpdate {
		t.Fatalf("expected update for changed formats on pending row, got %v", d.Action)
	}
	if !d.Asset.Formats.Has(catalog.FormatFBX) || !d.Asset.Formats.Has(catalog.FormatSBSAR) {
		t.Fatalf("formats = %v", d.Asset.Formats)
	}
	if !d.Asset.NeedToCheck {
		t.Fatal("expected row to stay pending")
	}

	// Formats now match, so the badge alone no longer rewrites the row.
	if again := Decide(d.Asset, entry, 3, scanTime.Add(time.Hour)); again.Action != ActionNone {
		t.Fatalf("expected no-op once formats are stored, got %v", again.Action)
	}
}

func TestDecideFormatSymmetry(t *testing.T) {
	row := storedRow()
	row.Formats = catalog.FormatSetFromTokens([]string{"SBSAR", "SBS", "EXR"})
	entry := Entry{Name: "Red Brick v2", URL: "u1", Image: "https://cdn/p1.png", FormatTokens: []string{"EXR", "MDL"}}

	d := Decide(row, entry, 3, scanTime)
	if d.Action != ActionUpdate {
		t.Fatalf("expected update on rename, got %v", d.Action)
	}
	if d.Asset.Formats != catalog.FormatSetFromTokens(entry.FormatTokens) {
		t.Fatalf("formats = %v, want exactly %v", d.Asset.Formats, entry.FormatTokens)
	}
	if d.Asset.Name != "Red Brick v2" {
		t.Fatalf("name = %q", d.Asset.Name)
	}
}

func TestDecidePreviewChangeRaisesFlag(t *testing.T) {
	row := storedRow()
	row.ImageChanged[catalog.SlotVariant1] = true
	entry := Entry{Name: "Red Brick", URL: "u1", Image: "https://cdn/p2.png", FormatTokens: []string{"SBSAR"}}

	d := Decide(row, entry, 3, scanTime)
	if d.Action != ActionUpdate {
		t.Fatalf("expected update, got %v", d.Action)
	}
	if d.Asset.Images[catalog.SlotPreview] != "https://cdn/p2.png" || !d.Asset.ImageChanged[catalog.SlotPreview] {
		t.Fatalf("preview not flagged: %+v", d.Asset)
	}
	if !d.Asset.ImageChanged[catalog.SlotVariant1] {
		t.Fatal("existing flags must survive an update")
	}
}

func TestDecideKeepsCategory(t *testing.T) {
	row := storedRow()
	entry := Entry{Name: "Renamed", URL: "u1", Image: "https://cdn/p1.png"}
	if d := Decide(row, entry, 99, scanTime); d.Asset.CategoryID != row.CategoryID {
		t.Fatalf("category changed to %d", d.Asset.CategoryID)
	}
}
