package testsupport

import (
	"context"
	"testing"

	"assetmirror/internal/catalog"
	"assetmirror/internal/config"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Fixture creates one asset type, category and the named assets beneath it.
// Assets start with need_to_check cleared so tests control scan state.
type Fixture struct {
	Type     *catalog.AssetType
	Category *catalog.Category
	Assets   []*catalog.Asset
	byName   map[string]*catalog.Asset
}

// Asset returns the fixture asset with the given name.
func (f *Fixture) Asset(name string) *catalog.Asset {
	return f.byName[name]
}

// SeedCategory inserts typeName/categoryName (reusing existing rows) and one
// asset per name with the given offered formats.
func SeedCategory(t testing.TB, store *catalog.Store, typeName, categoryName string, names []string, formats ...catalog.Format) *Fixture {
	t.Helper()
	ctx := context.Background()

	assetType, err := store.AssetTypeByName(ctx, typeName)
	if err != nil {
		t.Fatalf("AssetTypeByName: %v", err)
	}
	if assetType == nil {
		if assetType, err = store.InsertAssetType(ctx, typeName, "https://catalog.test/t/"+typeName); err != nil {
			t.Fatalf("InsertAssetType: %v", err)
		}
	}
	category, err := store.CategoryByName(ctx, assetType.ID, categoryName)
	if err != nil {
		t.Fatalf("CategoryByName: %v", err)
	}
	if category == nil {
		if category, err = store.InsertCategory(ctx, assetType.ID, categoryName, assetType.URL+"/c/"+categoryName); err != nil {
			t.Fatalf("InsertCategory: %v", err)
		}
	}

	var offered catalog.FormatSet
	for _, f := range formats {
		offered = offered.With(f)
	}

	fixture := &Fixture{Type: assetType, Category: category, byName: make(map[string]*catalog.Asset)}
	for _, name := range names {
		asset := &catalog.Asset{
			CategoryID: category.ID,
			Name:       name,
			URL:        category.URL + "/a/" + name,
			Formats:    offered,
		}
		asset.Images[catalog.SlotPreview] = "https://cdn.catalog.test/" + name + ".png"
		if err := store.InsertAsset(ctx, asset); err != nil {
			t.Fatalf("InsertAsset %s: %v", name, err)
		}
		fixture.Assets = append(fixture.Assets, asset)
		fixture.byName[name] = asset
	}
	return fixture
}

// MustAsset reloads an asset by ID and fails the test when it is missing.
func MustAsset(t testing.TB, store *catalog.Store, id int64) *catalog.Asset {
	t.Helper()
	asset, err := store.AssetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("AssetByID %d: %v", id, err)
	}
	if asset == nil {
		t.Fatalf("asset %d not found", id)
	}
	return asset
}
