package classify

import (
	"context"
	"errors"
	"testing"

	"assetmirror/internal/config"
	"assetmirror/internal/services"
	"assetmirror/internal/testsupport"
)

const base = "https://catalog.test/assets/allassets"

func siteRules() map[Level]Rule {
	return RulesFromSite(config.Default().Site)
}

func listingPage() *testsupport.FakePage {
	fake := testsupport.NewFakePage()
	fake.Set(base,
		testsupport.Link("nav-home", "https://catalog.test/", "Home"),
		testsupport.Link("tab q1", base+"?assetType=substanceMaterial", "Materials\n1200"),
		testsupport.Link("tab q1", base+"?assetType=substanceModel", "Models"),
		testsupport.Link("sub r7", base+"?assetType=substanceMaterial&category=Brick", "Brick\n40"),
		testsupport.Link("sub r7", base+"?assetType=substanceMaterial&category=Stone", "Stone"),
		testsupport.Link("sub r7", base+"?assetType=substanceModel&category=Props", "Props"),
	)
	return fake
}

func TestInstancesDonatesSignature(t *testing.T) {
	ctx := context.Background()
	fake := listingPage()
	if err := fake.Navigate(ctx, base); err != nil {
		t.Fatal(err)
	}
	c := New(fake, siteRules(), nil)

	types, err := c.Instances(ctx, LevelAssetType, nil)
	if err != nil {
		t.Fatalf("Instances: %v", err)
	}
	if len(types) != 2 {
		t.Fatalf("expected 2 asset types, got %d", len(types))
	}
	if sig, ok := c.Signature(LevelAssetType); !ok || sig != "tab q1" {
		t.Fatalf("signature = %q, %v", sig, ok)
	}

	cats, err := c.Instances(ctx, LevelCategory, nil)
	if err != nil {
		t.Fatalf("Instances category: %v", err)
	}
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(cats))
	}
}

func TestCategoriesOfFiltersByTypePrefix(t *testing.T) {
	ctx := context.Background()
	fake := listingPage()
	_ = fake.Navigate(ctx, base)
	c := New(fake, siteRules(), nil)

	cats, err := c.CategoriesOf(ctx, base+"?assetType=substanceModel")
	if err != nil {
		t.Fatalf("CategoriesOf: %v", err)
	}
	if len(cats) != 1 {
		t.Fatalf("expected one model category, got %d", len(cats))
	}
	href, _ := fake.Attribute(ctx, cats[0], "href")
	if href != base+"?assetType=substanceModel&category=Props" {
		t.Fatalf("unexpected category %q", href)
	}
}

func TestSignatureCachedAcrossPages(t *testing.T) {
	ctx := context.Background()
	fake := testsupport.NewFakePage()
	fake.Set("p1",
		testsupport.Entry("source-asset-thumbnail c1", "/a", "https://cdn/a.png", "A", "SBSAR"),
	)
	// Only exact signature matches count on later pages.
	fake.Set("p2",
		testsupport.Entry("source-asset-thumbnail c1", "/b", "https://cdn/b.png", "B", "SBSAR"),
		testsupport.Entry("other", "/c", "https://cdn/c.png", "C", "SBSAR"),
	)
	c := New(fake, siteRules(), nil)

	_ = fake.Navigate(ctx, "p1")
	if _, err := c.Instances(ctx, LevelEntry, nil); err != nil {
		t.Fatalf("first page: %v", err)
	}
	_ = fake.Navigate(ctx, "p2")
	entries, err := c.Instances(ctx, LevelEntry, nil)
	if err != nil {
		t.Fatalf("second page: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestClassificationFailures(t *testing.T) {
	ctx := context.Background()
	fake := testsupport.NewFakePage()
	fake.Set("empty", testsupport.El("div", "class", "nothing"))
	fake.Set("drifted", testsupport.El("div", "class", "source-asset-thumbnail new-hash"))
	fake.Set("first", testsupport.El("div", "class", "source-asset-thumbnail old-hash"))
	c := New(fake, siteRules(), nil)

	_ = fake.Navigate(ctx, "empty")
	_, err := c.Instances(ctx, LevelEntry, nil)
	if !errors.Is(err, ErrNoDonor) || !errors.Is(err, services.ErrClassification) {
		t.Fatalf("expected no donor, got %v", err)
	}

	_ = fake.Navigate(ctx, "first")
	if _, err := c.Instances(ctx, LevelEntry, nil); err != nil {
		t.Fatalf("first: %v", err)
	}
	_ = fake.Navigate(ctx, "drifted")
	_, err = c.Instances(ctx, LevelEntry, nil)
	if !errors.Is(err, ErrNoInstances) {
		t.Fatalf("expected no instances after class drift, got %v", err)
	}
	if services.Classify(err) != services.OutcomeAbort {
		t.Fatal("classification failure should abort the pass")
	}
}

func TestMissingReferenceIsConfigurationError(t *testing.T) {
	fake := listingPage()
	_ = fake.Navigate(context.Background(), base)
	c := New(fake, map[Level]Rule{}, nil)
	if _, err := c.Instances(context.Background(), LevelAssetType, nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
