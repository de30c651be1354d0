package catalog_test

import (
	"testing"

	"assetmirror/internal/catalog"
)

func TestFormatSetFromTokens(t *testing.T) {
	set := catalog.FormatSetFromTokens([]string{"SBSAR", "fbx", "PNG", ""})
	if !set.Has(catalog.FormatSBSAR) || !set.Has(catalog.FormatFBX) {
		t.Fatalf("expected sbsar and fbx, got %v", set)
	}
	if set.Has(catalog.FormatSBS) {
		t.Fatal("SBSAR token must not imply SBS")
	}
	if set.Count() != 2 {
		t.Fatalf("expected two formats, got %d", set.Count())
	}
	if set.String() != "sbsar fbx" {
		t.Fatalf("unexpected string %q", set.String())
	}
}

func TestFormatForExtension(t *testing.T) {
	cases := map[string]struct {
		format catalog.Format
		ok     bool
	}{
		".sbsar": {catalog.FormatSBSAR, true},
		".SBS":   {catalog.FormatSBS, true},
		"exr":    {catalog.FormatEXR, true},
		".glb":   {catalog.FormatGLB, true},
		".jpg":   {0, false},
	}
	for ext, want := range cases {
		got, ok := catalog.FormatForExtension(ext)
		if ok != want.ok || (ok && got != want.format) {
			t.Fatalf("FormatForExtension(%q) = %v, %v", ext, got, ok)
		}
	}
}

func TestAssetCompleteness(t *testing.T) {
	asset := catalog.Asset{Formats: catalog.FormatSetFromTokens([]string{"SBSAR", "SBS", "MDL"})}
	asset.HaveFormats = asset.HaveFormats.With(catalog.FormatSBS)

	count, have := asset.Completeness()
	if count != 3 || have != 1 {
		t.Fatalf("Completeness = %d/%d", have, count)
	}
	if got := catalog.JoinFormats(asset.MissingFormats()); got != "sbsar mdl" {
		t.Fatalf("MissingFormats = %q", got)
	}
}

func TestVariantSlot(t *testing.T) {
	if slot, ok := catalog.VariantSlot(1); !ok || slot != catalog.SlotVariant1 {
		t.Fatalf("VariantSlot(1) = %v, %v", slot, ok)
	}
	if slot, ok := catalog.VariantSlot(3); !ok || slot != catalog.SlotVariant3 {
		t.Fatalf("VariantSlot(3) = %v, %v", slot, ok)
	}
	if _, ok := catalog.VariantSlot(4); ok {
		t.Fatal("expected no slot beyond three variants")
	}
	if catalog.SlotVariant2.FileName() != "Variant2.png" {
		t.Fatalf("unexpected file name %q", catalog.SlotVariant2.FileName())
	}
}
