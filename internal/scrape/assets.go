package scrape

import (
	"context"
	"errors"
	"strings"
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/classify"
	"assetmirror/internal/logging"
	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

// ScanAssets walks the listing of every category in order. A category that
// goes stale mid-walk is abandoned and the pass moves on; classification and
// store failures end the pass.
func (e *Engine) ScanAssets(ctx context.Context, categories []*catalog.Category) (Summary, error) {
	var summary Summary
	ctx = services.WithStage(ctx, "assets")
	scanTime := e.now()

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		catCtx := services.WithCategory(ctx, category.Name)
		err := e.scanCategory(catCtx, category, scanTime, &summary)
		if err == nil {
			continue
		}
		if services.Classify(err) == services.OutcomeAbort {
			return summary, err
		}
		summary.Abandoned++
		summary.AbandonedCategory = append(summary.AbandonedCategory, category.Name)
		logging.WarnWithContext(logging.WithContext(catCtx, e.logger), "category abandoned",
			"category_abandoned",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rerun the asset scan for this category"),
			logging.String(logging.FieldImpact, "entries after the failure were not compared"),
		)
	}

	logging.WithContext(ctx, e.logger).Info("asset pass complete",
		logging.Int("created", summary.Created),
		logging.Int("updated", summary.Updated),
		logging.Int("unchanged", summary.Unchanged),
		logging.Int("abandoned", summary.Abandoned),
	)
	return summary, nil
}

func (e *Engine) scanCategory(ctx context.Context, category *catalog.Category, scanTime time.Time, summary *Summary) error {
	logger := logging.WithContext(ctx, e.logger)
	if err := e.open(ctx, category.URL, e.pageSettle); err != nil {
		return err
	}
	if err := page.ScrollToEnd(ctx, e.driver, e.site.ScrollStep, e.scrollWait); err != nil {
		return err
	}
	cards, err := e.classifier.Instances(ctx, classify.LevelEntry, nil)
	if err != nil {
		return err
	}

	for _, card := range cards {
		entry, err := e.readEntry(ctx, card)
		if err != nil {
			if errors.Is(err, services.ErrValidation) {
				summary.Skipped++
				logger.Debug("entry skipped", logging.Error(err))
				continue
			}
			return err
		}
		if !strings.HasPrefix(entry.Image, "https://") {
			summary.Placeholders++
			logger.Debug("entry image not loaded", logging.String("name", entry.Name))
			continue
		}

		existing, err := e.store.AssetByURL(ctx, entry.URL)
		if err != nil {
			return err
		}
		decision := Decide(existing, entry, category.ID, scanTime)
		switch decision.Action {
		case ActionCreate:
			if err := e.store.InsertAsset(ctx, decision.Asset); err != nil {
				return err
			}
			summary.Created++
			logger.Debug("asset created", logging.String("name", entry.Name), logging.Int64(logging.FieldAssetID, decision.Asset.ID))
		case ActionUpdate:
			if err := e.store.UpdateAsset(ctx, decision.Asset); err != nil {
				return err
			}
			summary.Updated++
			logger.Debug("asset updated", logging.String("name", entry.Name), logging.Int64(logging.FieldAssetID, decision.Asset.ID))
		default:
			summary.Unchanged++
		}
	}
	return nil
}

func (e *Engine) readEntry(ctx context.Context, card page.Element) (Entry, error) {
	href, err := e.firstAttribute(ctx, card, "a", "href")
	if err != nil {
		return Entry{}, err
	}
	if strings.TrimSpace(href) == "" {
		return Entry{}, services.Wrap(services.ErrValidation, "scrape", "read entry", "card link has no href", nil)
	}
	src, err := e.firstAttribute(ctx, card, "img", "src")
	if err != nil {
		return Entry{}, err
	}
	text, err := e.driver.Text(ctx, card)
	if err != nil {
		return Entry{}, err
	}
	name, badges, formats, err := ParseEntryText(text)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Name:         name,
		Badges:       badges,
		URL:          href,
		Image:        page.StripQuery(src),
		FormatTokens: formats,
	}, nil
}

func (e *Engine) firstAttribute(ctx context.Context, scope page.Element, tag, attr string) (string, error) {
	found, err := e.driver.FindAll(ctx, &scope, tag)
	if err != nil {
		return "", err
	}
	if len(found) == 0 {
		return "", services.Wrap(services.ErrValidation, "scrape", "read entry", "card has no <"+tag+">", nil)
	}
	return e.driver.Attribute(ctx, found[0], attr)
}
