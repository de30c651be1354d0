package reconcile

import (
	"context"
	"path/filepath"

	"assetmirror/internal/catalog"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
)

// PossessionStore persists have_format changes.
type PossessionStore interface {
	UpdateAsset(ctx context.Context, asset *catalog.Asset) error
}

// Possession counts the assets inspected and updated by MarkPossession.
type Possession struct {
	Checked int
	Updated int
}

// MarkPossession sets have_format for every offered format that has a file
// with the matching extension anywhere inside the asset folder. Flags are
// only ever raised. One write per asset whose flags changed.
func (r *Reconciler) MarkPossession(ctx context.Context, tax *catalog.Taxonomy, store PossessionStore) (Possession, error) {
	var result Possession
	ctx = services.WithStage(ctx, "possession")
	logger := logging.WithContext(ctx, r.logger)

	var walkErr error
	tax.Walk(func(p catalog.Placement) bool {
		if walkErr = ctx.Err(); walkErr != nil {
			return false
		}
		dir := r.layout.PlacementDir(p)
		if !fileutil.IsDir(dir) {
			return true
		}
		files, err := ListFiles(dir)
		if err != nil {
			walkErr = services.Wrap(services.ErrFilesystem, "reconcile", "list asset files", r.layout.Rel(dir), err)
			return false
		}
		result.Checked++

		have := p.Asset.HaveFormats
		for _, file := range files {
			f, ok := catalog.FormatForExtension(filepath.Ext(file))
			if ok && p.Asset.Formats.Has(f) {
				have = have.With(f)
			}
		}
		if have == p.Asset.HaveFormats {
			return true
		}
		updated := *p.Asset
		updated.HaveFormats = have
		if err := store.UpdateAsset(ctx, &updated); err != nil {
			walkErr = err
			return false
		}
		*p.Asset = updated
		result.Updated++
		logger.Debug("possession recorded",
			logging.Int64(logging.FieldAssetID, updated.ID),
			logging.String("have", have.String()),
		)
		return true
	})
	if walkErr != nil {
		return result, walkErr
	}
	logger.Info("possession marked", logging.Int("checked", result.Checked), logging.Int("updated", result.Updated))
	return result, nil
}
