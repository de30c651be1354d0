package reconcile

import (
	"context"
	"errors"
	"path/filepath"

	"assetmirror/internal/catalog"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
	"assetmirror/internal/textutil"
)

// Move records one relocated asset folder.
type Move struct {
	Asset *catalog.Asset
	From  string
	To    string
}

// Duplicate records an extra folder that also matched an asset name and was
// left in place.
type Duplicate struct {
	Asset *catalog.Asset
	Path  string
	Moved string
}

// Relocation is the outcome of a Relocate pass.
type Relocation struct {
	Moves      []Move
	Duplicates []Duplicate
}

// Relocate moves asset folders found under the wrong category to the
// category the catalog now records. Candidates are searched over every
// asset type and every category in listing order; the first one found wins.
// Folders that are some other asset's expected location are never taken.
func (r *Reconciler) Relocate(ctx context.Context, tax *catalog.Taxonomy) (Relocation, error) {
	var result Relocation
	ctx = services.WithStage(ctx, "relocate")
	logger := logging.WithContext(ctx, r.logger)

	owned := make(map[string]struct{})
	tax.Walk(func(p catalog.Placement) bool {
		owned[r.layout.PlacementDir(p)] = struct{}{}
		return true
	})

	var walkErr error
	tax.Walk(func(p catalog.Placement) bool {
		if walkErr = ctx.Err(); walkErr != nil {
			return false
		}
		expected := r.layout.PlacementDir(p)
		if fileutil.IsDir(expected) {
			return true
		}
		candidates := r.candidates(tax, p.Asset, expected, owned)
		if len(candidates) == 0 {
			return true
		}

		from := candidates[0]
		if err := r.moveFolder(from, expected); err != nil {
			walkErr = err
			return false
		}
		move := Move{Asset: p.Asset, From: from, To: expected}
		result.Moves = append(result.Moves, move)
		logger.Info("asset folder relocated",
			logging.Int64(logging.FieldAssetID, p.Asset.ID),
			logging.String("from", r.layout.Rel(from)),
			logging.String("to", r.layout.Rel(expected)),
		)
		for _, extra := range candidates[1:] {
			result.Duplicates = append(result.Duplicates, Duplicate{Asset: p.Asset, Path: extra, Moved: from})
			logging.WarnWithContext(logger, "duplicate asset folder left in place", "duplicate_asset_folder",
				logging.Int64(logging.FieldAssetID, p.Asset.ID),
				logging.String("path", r.layout.Rel(extra)),
				logging.String("relocated", r.layout.Rel(from)),
				logging.String(logging.FieldErrorHint, "merge or remove the extra folder by hand"),
				logging.String(logging.FieldImpact, "only the first match was relocated"),
			)
		}
		return true
	})
	if walkErr != nil {
		return result, walkErr
	}
	logger.Info("relocation complete",
		logging.Int("moved", len(result.Moves)),
		logging.Int("duplicates", len(result.Duplicates)),
	)
	return result, nil
}

func (r *Reconciler) candidates(tax *catalog.Taxonomy, asset *catalog.Asset, expected string, owned map[string]struct{}) []string {
	name := textutil.PathSegment(asset.Name)
	var found []string
	seen := make(map[string]struct{})
	for _, t := range tax.Types {
		for _, c := range tax.Categories {
			path := filepath.Join(r.layout.CategoryDir(t, c), name)
			if _, dup := seen[path]; dup || path == expected {
				continue
			}
			seen[path] = struct{}{}
			if _, taken := owned[path]; taken {
				continue
			}
			if fileutil.IsDir(path) {
				found = append(found, path)
			}
		}
	}
	return found
}

func (r *Reconciler) moveFolder(from, to string) error {
	// Both ends may have changed since the search.
	if !fileutil.IsDir(from) {
		return services.Wrap(services.ErrFilesystem, "reconcile", "relocate", r.layout.Rel(from)+" vanished before move", nil)
	}
	if _, err := r.ensureDir(filepath.Dir(to)); err != nil {
		return err
	}
	if err := fileutil.MoveDir(from, to); err != nil {
		msg := r.layout.Rel(from) + " >> " + r.layout.Rel(to)
		if errors.Is(err, fileutil.ErrDestinationExists) {
			return services.Wrap(services.ErrFilesystem, "reconcile", "relocate", msg+": destination appeared", err)
		}
		return services.Wrap(services.ErrFilesystem, "reconcile", "relocate", msg, err)
	}
	return nil
}
