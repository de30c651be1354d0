package reconcile

import (
	"path/filepath"

	"assetmirror/internal/catalog"
	"assetmirror/internal/config"
	"assetmirror/internal/textutil"
)

// Layout maps catalog rows to directories under the library root.
type Layout struct {
	Root      string
	InboxName string
}

// NewLayout builds the layout from configuration.
func NewLayout(cfg *config.Config) Layout {
	return Layout{Root: cfg.Paths.LibraryDir, InboxName: cfg.Paths.InboxDir}
}

// Inbox returns the loose-file directory.
func (l Layout) Inbox() string {
	return filepath.Join(l.Root, l.InboxName)
}

func (l Layout) TypeDir(t *catalog.AssetType) string {
	return filepath.Join(l.Root, textutil.PathSegment(t.Name))
}

func (l Layout) CategoryDir(t *catalog.AssetType, c *catalog.Category) string {
	return filepath.Join(l.TypeDir(t), textutil.PathSegment(c.Name))
}

func (l Layout) AssetDir(t *catalog.AssetType, c *catalog.Category, a *catalog.Asset) string {
	return filepath.Join(l.CategoryDir(t, c), textutil.PathSegment(a.Name))
}

// PlacementDir is AssetDir for a taxonomy walk step.
func (l Layout) PlacementDir(p catalog.Placement) string {
	return l.AssetDir(p.Type, p.Category, p.Asset)
}

// Rel renders path relative to the root for logs and reports.
func (l Layout) Rel(path string) string {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return path
	}
	return rel
}
