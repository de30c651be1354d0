// Package classify infers which page elements are instances of a taxonomy
// level when the markup carries no stable identifiers.
//
// The first element whose probed attribute contains a known reference string
// donates its full class attribute as the level's signature. Every element of
// the same tag with an identical class string is an instance. Signatures are
// cached per Classifier so later pages of the same run reuse them.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"assetmirror/internal/config"
	"assetmirror/internal/logging"
	"assetmirror/internal/page"
	"assetmirror/internal/services"
)

var (
	// ErrNoDonor means no element matched the level's reference pattern.
	ErrNoDonor = fmt.Errorf("no reference element: %w", services.ErrClassification)
	// ErrNoInstances means a known signature matched nothing on the page.
	ErrNoInstances = fmt.Errorf("no elements match signature: %w", services.ErrClassification)
)

// Level identifies a taxonomy level on the listing pages.
type Level int

const (
	LevelAssetType Level = iota
	LevelCategory
	LevelEntry
)

func (l Level) String() string {
	switch l {
	case LevelAssetType:
		return "asset_type"
	case LevelCategory:
		return "category"
	case LevelEntry:
		return "entry"
	default:
		return "unknown"
	}
}

// Rule describes how to find the donor for a level.
type Rule struct {
	Tag       string
	Probe     string
	Reference string
}

// RulesFromSite builds the three level rules from the site configuration.
func RulesFromSite(site config.Site) map[Level]Rule {
	return map[Level]Rule{
		LevelAssetType: {Tag: "a", Probe: "href", Reference: site.AssetTypeReference},
		LevelCategory:  {Tag: "a", Probe: "href", Reference: site.CategoryReference},
		LevelEntry:     {Tag: "div", Probe: "class", Reference: site.EntryReference},
	}
}

// Classifier caches one signature per level for the duration of a run.
type Classifier struct {
	driver     page.Driver
	rules      map[Level]Rule
	signatures map[Level]string
	logger     *slog.Logger
}

// New builds a classifier over driver.
func New(driver page.Driver, rules map[Level]Rule, logger *slog.Logger) *Classifier {
	return &Classifier{
		driver:     driver,
		rules:      rules,
		signatures: make(map[Level]string, len(rules)),
		logger:     logging.NewComponentLogger(logger, "classify"),
	}
}

// Signature returns the cached class signature for level.
func (c *Classifier) Signature(level Level) (string, bool) {
	sig, ok := c.signatures[level]
	return sig, ok
}

// Instances returns the elements under scope (nil for the whole page) that
// share the level's signature, donating one first if none is cached.
func (c *Classifier) Instances(ctx context.Context, level Level, scope *page.Element) ([]page.Element, error) {
	rule, ok := c.rules[level]
	if !ok || strings.TrimSpace(rule.Reference) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "classify", level.String(), "no reference pattern configured", nil)
	}
	candidates, err := c.driver.FindAll(ctx, scope, rule.Tag)
	if err != nil {
		return nil, err
	}

	signature, cached := c.signatures[level]
	if !cached {
		signature, err = c.donate(ctx, rule, candidates)
		if err != nil {
			return nil, fmt.Errorf("%s on %s: %w", level, c.driver.CurrentURL(), err)
		}
		c.signatures[level] = signature
		c.logger.Debug("signature donated",
			logging.String("level", level.String()),
			logging.String("signature", signature),
		)
	}

	var out []page.Element
	for _, el := range candidates {
		class, err := c.driver.Attribute(ctx, el, "class")
		if err != nil {
			return nil, err
		}
		if class == signature {
			out = append(out, el)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s signature %q on %s: %w", level, signature, c.driver.CurrentURL(), ErrNoInstances)
	}
	return out, nil
}

func (c *Classifier) donate(ctx context.Context, rule Rule, candidates []page.Element) (string, error) {
	for _, el := range candidates {
		probed, err := c.driver.Attribute(ctx, el, rule.Probe)
		if err != nil {
			return "", err
		}
		if !strings.Contains(probed, rule.Reference) {
			continue
		}
		class, err := c.driver.Attribute(ctx, el, "class")
		if err != nil {
			return "", err
		}
		return class, nil
	}
	return "", ErrNoDonor
}

// CategoriesOf returns category links that belong to the asset type whose
// link is typeHref: instances whose href starts with it.
func (c *Classifier) CategoriesOf(ctx context.Context, typeHref string) ([]page.Element, error) {
	all, err := c.Instances(ctx, LevelCategory, nil)
	if err != nil {
		return nil, err
	}
	var out []page.Element
	for _, el := range all {
		href, err := c.driver.Attribute(ctx, el, "href")
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(href, typeHref) {
			out = append(out, el)
		}
	}
	return out, nil
}
