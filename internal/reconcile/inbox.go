package reconcile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"assetmirror/internal/catalog"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
	"assetmirror/internal/textutil"
)

// Transfer is the outcome of TransferInbox. Moved and Existing hold
// destination paths; Missing holds inbox file names no asset claimed.
type Transfer struct {
	Moved    []string
	Existing []string
	Missing  []string
}

// TransferInbox files loose inbox files into mirrored asset folders. The
// inbox listing is captured once. A generic image matches when its folded
// name contains the folded asset name; any other file matches when its folded
// stem equals the folded asset name. A matched file whose destination already
// exists is reported as existing and left in the inbox. A file moved by a
// later asset is reported as moved only.
func (r *Reconciler) TransferInbox(ctx context.Context, tax *catalog.Taxonomy) (Transfer, error) {
	var result Transfer
	ctx = services.WithStage(ctx, "inbox")
	logger := logging.WithContext(ctx, r.logger)

	inbox := r.layout.Inbox()
	entries, err := os.ReadDir(inbox)
	if err != nil {
		return result, services.Wrap(services.ErrFilesystem, "reconcile", "read inbox", inbox, err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}

	type existingFile struct{ name, dst string }
	var existing []existingFile
	claimed := make(map[string]bool, len(files))
	moved := make(map[string]bool, len(files))
	var walkErr error
	tax.Walk(func(p catalog.Placement) bool {
		if walkErr = ctx.Err(); walkErr != nil {
			return false
		}
		dir := r.layout.PlacementDir(p)
		if !fileutil.IsDir(dir) {
			return true
		}
		assetKey := textutil.Fold(p.Asset.Name)
		for _, name := range files {
			if !r.matches(name, assetKey) {
				continue
			}
			src := filepath.Join(inbox, name)
			dst := filepath.Join(dir, name)
			if !fileutil.Exists(src) {
				continue
			}
			if fileutil.Exists(dst) {
				claimed[name] = true
				existing = append(existing, existingFile{name, dst})
				continue
			}
			if err := fileutil.MoveFile(src, dst); err != nil {
				if errors.Is(err, fileutil.ErrDestinationExists) {
					claimed[name] = true
					existing = append(existing, existingFile{name, dst})
					continue
				}
				walkErr = services.Wrap(services.ErrFilesystem, "reconcile", "move inbox file", name, err)
				return false
			}
			claimed[name] = true
			moved[name] = true
			result.Moved = append(result.Moved, dst)
			logger.Debug("inbox file placed",
				logging.String("file", name),
				logging.String("to", r.layout.Rel(dir)),
			)
		}
		return true
	})
	for _, e := range existing {
		if !moved[e.name] {
			result.Existing = append(result.Existing, e.dst)
		}
	}
	if walkErr != nil {
		return result, walkErr
	}

	for _, name := range files {
		if !claimed[name] {
			result.Missing = append(result.Missing, name)
		}
	}
	logger.Info("inbox transfer complete",
		logging.Int("moved", len(result.Moved)),
		logging.Int("existing", len(result.Existing)),
		logging.Int("missing", len(result.Missing)),
	)
	return result, nil
}

func (r *Reconciler) matches(fileName, assetKey string) bool {
	if assetKey == "" {
		return false
	}
	if r.isImage(filepath.Ext(fileName)) {
		return strings.Contains(textutil.MatchKey(fileName), assetKey)
	}
	return textutil.MatchKey(textutil.Stem(fileName)) == assetKey
}
