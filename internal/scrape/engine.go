package scrape

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/classify"
	"assetmirror/internal/config"
	"assetmirror/internal/logging"
	"assetmirror/internal/page"
)

// TaxonomyStore is the catalog surface used by the taxonomy pass.
type TaxonomyStore interface {
	AssetTypeByName(ctx context.Context, name string) (*catalog.AssetType, error)
	InsertAssetType(ctx context.Context, name, url string) (*catalog.AssetType, error)
	UpdateAssetType(ctx context.Context, assetType *catalog.AssetType) error
	CategoryByName(ctx context.Context, assetTypeID int64, name string) (*catalog.Category, error)
	InsertCategory(ctx context.Context, assetTypeID int64, name, url string) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, category *catalog.Category) error
}

// AssetStore is the catalog surface used by the asset and detail passes.
type AssetStore interface {
	AssetByURL(ctx context.Context, url string) (*catalog.Asset, error)
	InsertAsset(ctx context.Context, asset *catalog.Asset) error
	UpdateAsset(ctx context.Context, asset *catalog.Asset) error
	AssetsNeedingCheck(ctx context.Context) ([]*catalog.Asset, error)
}

// Store combines both surfaces; *catalog.Store satisfies it.
type Store interface {
	TaxonomyStore
	AssetStore
}

// Engine runs scan passes over one page driver and one store.
type Engine struct {
	driver     page.Driver
	store      Store
	classifier *classify.Classifier
	site       config.Site
	pageSettle time.Duration
	detailWait time.Duration
	scrollWait time.Duration
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for last_change_date.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine wires an engine from configuration.
func NewEngine(cfg *config.Config, driver page.Driver, store Store, logger *slog.Logger, opts ...Option) *Engine {
	logger = logging.NewComponentLogger(logger, "scrape")
	e := &Engine{
		driver:     driver,
		store:      store,
		classifier: classify.New(driver, classify.RulesFromSite(cfg.Site), logger),
		site:       cfg.Site,
		pageSettle: cfg.PageSettle(),
		detailWait: cfg.DetailSettle(),
		scrollWait: cfg.ScrollPause(),
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) open(ctx context.Context, url string, settle time.Duration) error {
	if err := e.driver.Navigate(ctx, url); err != nil {
		return err
	}
	return page.Wait(ctx, settle)
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	return line
}
