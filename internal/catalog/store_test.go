package catalog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/services"
	"assetmirror/internal/testsupport"
)

func TestOpenCreatesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable || !health.IntegrityCheck {
		t.Fatalf("unexpected health: %+v", health)
	}
	if len(health.MissingColumns) != 0 {
		t.Fatalf("unexpected missing columns: %v", health.MissingColumns)
	}
	if len(health.TablesPresent) != 3 {
		t.Fatalf("expected three tables, got %v", health.TablesPresent)
	}
	if health.SchemaVersion != 1 {
		t.Fatalf("unexpected schema version %d", health.SchemaVersion)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.InsertAssetType(context.Background(), "Materials", "https://catalog.test/t"); err != nil {
		t.Fatalf("InsertAssetType: %v", err)
	}
	store.Close()

	reopened := testsupport.MustOpenStore(t, cfg)
	types, err := reopened.AssetTypes(context.Background())
	if err != nil {
		t.Fatalf("AssetTypes: %v", err)
	}
	if len(types) != 1 || types[0].Name != "Materials" {
		t.Fatalf("unexpected types after reopen: %+v", types)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := catalog.Open("  ")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestTaxonomyLookups(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	materials, err := store.InsertAssetType(ctx, "Materials", "https://catalog.test/m")
	if err != nil {
		t.Fatalf("InsertAssetType: %v", err)
	}
	models, err := store.InsertAssetType(ctx, "Models", "https://catalog.test/o")
	if err != nil {
		t.Fatalf("InsertAssetType: %v", err)
	}
	brick, err := store.InsertCategory(ctx, materials.ID, "Brick", "https://catalog.test/m&c=brick")
	if err != nil {
		t.Fatalf("InsertCategory: %v", err)
	}
	if _, err := store.InsertCategory(ctx, models.ID, "Brick", "https://catalog.test/o&c=brick"); err != nil {
		t.Fatalf("InsertCategory: %v", err)
	}

	found, err := store.AssetTypeByName(ctx, "Models")
	if err != nil || found == nil || found.ID != models.ID {
		t.Fatalf("AssetTypeByName = %+v, %v", found, err)
	}
	missing, err := store.AssetTypeByName(ctx, "Decals")
	if err != nil || missing != nil {
		t.Fatalf("expected nil for unknown type, got %+v, %v", missing, err)
	}

	cat, err := store.CategoryByName(ctx, materials.ID, "Brick")
	if err != nil || cat == nil || cat.ID != brick.ID {
		t.Fatalf("CategoryByName scoped to type = %+v, %v", cat, err)
	}

	cats, err := store.CategoriesByType(ctx, models.ID)
	if err != nil {
		t.Fatalf("CategoriesByType: %v", err)
	}
	if len(cats) != 1 || cats[0].AssetTypeID != models.ID {
		t.Fatalf("unexpected categories for models: %+v", cats)
	}

	brick.URL = "https://catalog.test/m&c=brick2"
	if err := store.UpdateCategory(ctx, brick); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	reloaded, err := store.CategoryByID(ctx, brick.ID)
	if err != nil || reloaded.URL != brick.URL {
		t.Fatalf("expected updated url, got %+v, %v", reloaded, err)
	}
}

func TestAssetRoundTripAndUrlKeying(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	fx := testsupport.SeedCategory(t, store, "Materials", "Brick", nil)

	changed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	first := &catalog.Asset{
		CategoryID:  fx.Category.ID,
		Name:        "Red Brick",
		URL:         "u1",
		LastChange:  changed,
		NeedToCheck: true,
		Formats:     catalog.FormatSetFromTokens([]string{"SBSAR", "FBX"}),
	}
	first.Images[catalog.SlotPreview] = "https://cdn/p1.png"
	first.Images[catalog.SlotVariant2] = "https://cdn/v2.png"
	first.ImageChanged[catalog.SlotVariant2] = true
	first.HaveFormats = first.HaveFormats.With(catalog.FormatSBSAR)
	if err := store.InsertAsset(ctx, first); err != nil {
		t.Fatalf("InsertAsset: %v", err)
	}
	second := &catalog.Asset{CategoryID: fx.Category.ID, Name: "Red Brick", URL: "u2"}
	if err := store.InsertAsset(ctx, second); err != nil {
		t.Fatalf("InsertAsset: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct rows for distinct urls")
	}

	got, err := store.AssetByURL(ctx, "u1")
	if err != nil || got == nil {
		t.Fatalf("AssetByURL: %+v, %v", got, err)
	}
	if got.ID != first.ID || got.Name != "Red Brick" {
		t.Fatalf("unexpected asset: %+v", got)
	}
	if got.Images != first.Images || got.ImageChanged != first.ImageChanged {
		t.Fatalf("image slots not persisted: %+v", got)
	}
	if got.Formats != first.Formats || got.HaveFormats != first.HaveFormats {
		t.Fatalf("formats not persisted: %+v", got)
	}
	if !got.LastChange.Equal(changed) || !got.NeedToCheck {
		t.Fatalf("scan state not persisted: %+v", got)
	}

	named, err := store.AssetsByName(ctx, "Red Brick")
	if err != nil {
		t.Fatalf("AssetsByName: %v", err)
	}
	if len(named) != 2 {
		t.Fatalf("expected two assets sharing a name, got %d", len(named))
	}

	pending, err := store.AssetsNeedingCheck(ctx)
	if err != nil {
		t.Fatalf("AssetsNeedingCheck: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != first.ID {
		t.Fatalf("unexpected pending assets: %+v", pending)
	}
}

func TestUpdateAssetMissingRow(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	err := store.UpdateAsset(context.Background(), &catalog.Asset{ID: 999, CategoryID: 1, Name: "x", URL: "x"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestClearImageChanged(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()
	fx := testsupport.SeedCategory(t, store, "Materials", "Brick", []string{"Red Brick"})

	asset := fx.Asset("Red Brick")
	for _, slot := range catalog.AllSlots() {
		asset.ImageChanged[slot] = true
	}
	if err := store.UpdateAsset(ctx, asset); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}

	if err := store.ClearImageChanged(ctx, asset.ID, catalog.SlotPreview, catalog.SlotVariant3); err != nil {
		t.Fatalf("ClearImageChanged: %v", err)
	}
	got := testsupport.MustAsset(t, store, asset.ID)
	want := [catalog.SlotCount]bool{false, true, true, true, false}
	if got.ImageChanged != want {
		t.Fatalf("ImageChanged = %v, want %v", got.ImageChanged, want)
	}
}

func TestStoreErrorsCarryMarker(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	store.Close()

	_, err := store.AssetTypes(context.Background())
	if !errors.Is(err, services.ErrStore) {
		t.Fatalf("expected store marker on closed database, got %v", err)
	}
}

func TestCategoryCountsAndTaxonomy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedCategory(t, store, "Materials", "Brick", []string{"Red Brick", "Old Brick"})
	testsupport.SeedCategory(t, store, "Materials", "Stone", nil)
	testsupport.SeedCategory(t, store, "Models", "Props", []string{"Crate"})

	counts, err := store.CategoryCounts(ctx)
	if err != nil {
		t.Fatalf("CategoryCounts: %v", err)
	}
	want := []catalog.CategoryCount{
		{AssetType: "Materials", Category: "Brick", Assets: 2},
		{AssetType: "Materials", Category: "Stone", Assets: 0},
		{AssetType: "Models", Category: "Props", Assets: 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("unexpected counts: %+v", counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}

	tax, err := store.LoadTaxonomy(ctx)
	if err != nil {
		t.Fatalf("LoadTaxonomy: %v", err)
	}
	var order []string
	tax.Walk(func(p catalog.Placement) bool {
		order = append(order, filepath.Join(p.Type.Name, p.Category.Name, p.Asset.Name))
		return true
	})
	wantOrder := []string{
		filepath.Join("Materials", "Brick", "Red Brick"),
		filepath.Join("Materials", "Brick", "Old Brick"),
		filepath.Join("Models", "Props", "Crate"),
	}
	if len(order) != len(wantOrder) {
		t.Fatalf("walk order = %v", order)
	}
	for i := range wantOrder {
		if order[i] != wantOrder[i] {
			t.Fatalf("walk order = %v, want %v", order, wantOrder)
		}
	}
}
