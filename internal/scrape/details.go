package scrape

import (
	"context"
	"slices"
	"strings"
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/changeflag"
	"assetmirror/internal/logging"
	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

// ScanDetails visits every asset waiting for a detail scan and records its
// details and variant images. Pages that show no images beyond the preview
// leave need_to_check set so the asset is retried on the next run.
func (e *Engine) ScanDetails(ctx context.Context) (Summary, error) {
	var summary Summary
	ctx = services.WithStage(ctx, "details")

	pending, err := e.store.AssetsNeedingCheck(ctx)
	if err != nil {
		return summary, err
	}
	scanTime := e.now()
	for _, asset := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		assetCtx := services.WithAssetID(ctx, asset.ID)
		recorded, err := e.scanDetail(assetCtx, asset, scanTime)
		switch {
		case err == nil && recorded:
			summary.DetailsRecorded++
		case err == nil:
			summary.DetailsEmpty++
		case services.Classify(err) == services.OutcomeContinue:
			summary.DetailsFailed++
			logging.WarnWithContext(logging.WithContext(assetCtx, e.logger), "detail page skipped",
				"detail_skipped",
				logging.String("url", asset.URL),
				logging.Error(err),
				logging.String(logging.FieldImpact, "asset stays pending for the next detail scan"),
			)
		default:
			return summary, err
		}
	}
	logging.WithContext(ctx, e.logger).Info("detail pass complete",
		logging.Int("pending", len(pending)),
		logging.Int("recorded", summary.DetailsRecorded),
		logging.Int("empty", summary.DetailsEmpty),
	)
	return summary, nil
}

func (e *Engine) scanDetail(ctx context.Context, asset *catalog.Asset, scanTime time.Time) (bool, error) {
	if err := e.open(ctx, asset.URL, e.detailWait); err != nil {
		return false, err
	}
	images, err := e.detailImages(ctx)
	if err != nil {
		return false, err
	}
	mapping := changeflag.MapDetailImages(asset.Images[catalog.SlotPreview], images, e.site.DetailsMarker)
	if mapping.Seen == 0 {
		return false, nil
	}
	updated := *asset
	changeflag.ApplyMapping(&updated, mapping)
	updated.NeedToCheck = false
	updated.LastChange = scanTime
	if err := e.store.UpdateAsset(ctx, &updated); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) detailImages(ctx context.Context) ([]changeflag.DetailImage, error) {
	divs, err := e.driver.FindAll(ctx, nil, "div")
	if err != nil {
		return nil, err
	}
	var view *page.Element
	for i := range divs {
		class, err := e.driver.Attribute(ctx, divs[i], "class")
		if err != nil {
			return nil, err
		}
		if slices.Contains(strings.Fields(class), e.site.ViewClass) {
			view = &divs[i]
			break
		}
	}
	if view == nil {
		return nil, nil
	}

	children, err := e.driver.FindAll(ctx, view, "div")
	if err != nil {
		return nil, err
	}
	var images []changeflag.DetailImage
	for _, child := range children {
		css, err := e.driver.Style(ctx, child, "background-image")
		if err != nil {
			return nil, err
		}
		url := page.BackgroundImageURL(css)
		if url == "" {
			continue
		}
		class, err := e.driver.Attribute(ctx, child, "class")
		if err != nil {
			return nil, err
		}
		images = append(images, changeflag.DetailImage{URL: url, Class: class})
	}
	return images, nil
}
