package scrape

import (
	"context"
	"strings"

	"assetmirror/internal/catalog"
	"assetmirror/internal/classify"
	"assetmirror/internal/logging"
	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

// ScanTaxonomy records every asset type and category linked from the base
// listing. Existing rows are matched by name; their URL is refreshed when it
// drifts.
func (e *Engine) ScanTaxonomy(ctx context.Context) (Summary, error) {
	var summary Summary
	ctx = services.WithStage(ctx, "taxonomy")
	logger := logging.WithContext(ctx, e.logger)

	if err := e.open(ctx, e.site.BaseURL, e.pageSettle); err != nil {
		return summary, err
	}
	types, err := e.classifier.Instances(ctx, classify.LevelAssetType, nil)
	if err != nil {
		return summary, err
	}
	for _, el := range types {
		name, href, err := e.linkInfo(ctx, el)
		if err != nil {
			return summary, err
		}
		assetType, created, err := e.ensureAssetType(ctx, name, href, &summary)
		if err != nil {
			return summary, err
		}
		if created {
			summary.NewTypes++
			logger.Info("asset type recorded", logging.String("name", name), logging.String("url", href))
		}

		categories, err := e.classifier.CategoriesOf(ctx, href)
		if err != nil {
			return summary, err
		}
		for _, catEl := range categories {
			catName, catHref, err := e.linkInfo(ctx, catEl)
			if err != nil {
				return summary, err
			}
			created, err := e.ensureCategory(ctx, assetType, catName, catHref, &summary)
			if err != nil {
				return summary, err
			}
			if created {
				summary.NewCategories++
				logger.Info("category recorded",
					logging.String("asset_type", assetType.Name),
					logging.String("name", catName),
				)
			}
		}
	}
	logger.Info("taxonomy pass complete",
		logging.Int("new_types", summary.NewTypes),
		logging.Int("new_categories", summary.NewCategories),
	)
	return summary, nil
}

func (e *Engine) linkInfo(ctx context.Context, el page.Element) (string, string, error) {
	text, err := e.driver.Text(ctx, el)
	if err != nil {
		return "", "", err
	}
	href, err := e.driver.Attribute(ctx, el, "href")
	if err != nil {
		return "", "", err
	}
	return strings.TrimSpace(firstLine(text)), href, nil
}

func (e *Engine) ensureAssetType(ctx context.Context, name, href string, summary *Summary) (*catalog.AssetType, bool, error) {
	existing, err := e.store.AssetTypeByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		created, err := e.store.InsertAssetType(ctx, name, href)
		return created, err == nil, err
	}
	if existing.URL != href {
		existing.URL = href
		if err := e.store.UpdateAssetType(ctx, existing); err != nil {
			return nil, false, err
		}
		summary.UpdatedTaxonomy++
	}
	return existing, false, nil
}

func (e *Engine) ensureCategory(ctx context.Context, assetType *catalog.AssetType, name, href string, summary *Summary) (bool, error) {
	existing, err := e.store.CategoryByName(ctx, assetType.ID, name)
	if err != nil {
		return false, err
	}
	if existing == nil {
		_, err := e.store.InsertCategory(ctx, assetType.ID, name, href)
		return err == nil, err
	}
	if existing.URL != href {
		existing.URL = href
		if err := e.store.UpdateCategory(ctx, existing); err != nil {
			return false, err
		}
		summary.UpdatedTaxonomy++
	}
	return false, nil
}
