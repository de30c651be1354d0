package reconcile

import (
	"context"
	"slices"

	"assetmirror/internal/catalog"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
)

// FolderSummary counts directories created by CreateFolders.
type FolderSummary struct {
	Created int
}

// CreateFolders creates the inbox and the type, category and asset
// directories for the given asset types (all types when none are given).
func (r *Reconciler) CreateFolders(ctx context.Context, tax *catalog.Taxonomy, typeIDs ...int64) (FolderSummary, error) {
	var summary FolderSummary
	logger := logging.WithContext(services.WithStage(ctx, "folders"), r.logger)

	dirs := []string{r.layout.Inbox()}
	for _, t := range tax.Types {
		if len(typeIDs) > 0 && !slices.Contains(typeIDs, t.ID) {
			continue
		}
		dirs = append(dirs, r.layout.TypeDir(t))
		for _, c := range tax.CategoriesOf(t.ID) {
			dirs = append(dirs, r.layout.CategoryDir(t, c))
			for _, a := range tax.AssetsOf(c.ID) {
				dirs = append(dirs, r.layout.AssetDir(t, c, a))
			}
		}
	}

	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		created, err := r.ensureDir(dir)
		if err != nil {
			return summary, err
		}
		if created {
			summary.Created++
			logger.Debug("directory created", logging.String("path", r.layout.Rel(dir)))
		}
	}
	logger.Info("folders ready", logging.Int("created", summary.Created), logging.Int("checked", len(dirs)))
	return summary, nil
}
