package fetch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"assetmirror/internal/catalog"
	"assetmirror/internal/changeflag"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/logging"
	"assetmirror/internal/reconcile"
	"assetmirror/internal/services"
)

// FlagStore clears changed flags once replacement files are on disk.
type FlagStore interface {
	ClearImageChanged(ctx context.Context, id int64, slots ...catalog.ImageSlot) error
}

// Summary counts the work done by one fetch pass.
type Summary struct {
	Assets     int
	Downloaded int
	Archived   int
	Present    int
	Failed     int
	Cleared    int
	Bytes      int64
}

// Stage runs the image fetch pass.
type Stage struct {
	layout     reconcile.Layout
	downloader Downloader
	store      FlagStore
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a Stage.
type Option func(*Stage)

// WithClock overrides the clock used for archive names.
func WithClock(now func() time.Time) Option {
	return func(s *Stage) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStage builds a fetch stage.
func NewStage(layout reconcile.Layout, downloader Downloader, store FlagStore, logger *slog.Logger, opts ...Option) *Stage {
	s := &Stage{
		layout:     layout,
		downloader: downloader,
		store:      store,
		logger:     logging.NewComponentLogger(logger, "fetch"),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run fetches every slot of every mirrored asset. Download failures are
// counted and skipped; store and context errors end the pass.
func (s *Stage) Run(ctx context.Context, tax *catalog.Taxonomy) (Summary, error) {
	var summary Summary
	started := s.now()
	ctx = services.WithStage(ctx, "fetch")
	logger := logging.WithContext(ctx, s.logger)

	var runErr error
	tax.Walk(func(p catalog.Placement) bool {
		if runErr = ctx.Err(); runErr != nil {
			return false
		}
		dir := s.layout.PlacementDir(p)
		if !fileutil.IsDir(dir) {
			return true
		}
		summary.Assets++
		runErr = s.fetchAsset(ctx, logger, p.Asset, dir, &summary)
		return runErr == nil
	})

	logger.Info("image fetch completed",
		logging.String(logging.FieldEventType, "fetch_summary"),
		logging.Int("assets", summary.Assets),
		logging.Int("downloaded", summary.Downloaded),
		logging.Int("archived", summary.Archived),
		logging.Int("failed", summary.Failed),
		logging.Int64("bytes", summary.Bytes),
		logging.Duration("elapsed", s.now().Sub(started)),
	)
	return summary, runErr
}

func (s *Stage) fetchAsset(ctx context.Context, logger *slog.Logger, asset *catalog.Asset, dir string, summary *Summary) error {
	var refreshed []catalog.ImageSlot
	for _, slot := range catalog.AllSlots() {
		url := asset.Image(slot)
		if url == "" {
			continue
		}
		path := filepath.Join(dir, slot.FileName())
		changed := asset.ImageChanged[slot]

		if fileutil.Exists(path) {
			if !changed {
				summary.Present++
				continue
			}
			archive := changeflag.ArchiveName(path, s.now())
			if err := fileutil.MoveFile(path, archive); err != nil {
				summary.Failed++
				logging.WarnWithContext(logger, "archive superseded image failed", "fetch_archive_failed",
					logging.Int64(logging.FieldAssetID, asset.ID),
					logging.String("file", s.layout.Rel(path)),
					logging.String(logging.FieldImpact, "slot keeps the previous image until the next run"),
					logging.Error(err),
				)
				continue
			}
			summary.Archived++
		}

		written, err := s.downloader.Download(ctx, url, path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			summary.Failed++
			logging.WarnWithContext(logger, "image download failed", "fetch_download_failed",
				logging.Int64(logging.FieldAssetID, asset.ID),
				logging.String("slot", slot.String()),
				logging.String("url", url),
				logging.String(logging.FieldImpact, "slot file stays missing until the next run"),
				logging.Error(err),
			)
			continue
		}
		summary.Downloaded++
		summary.Bytes += written
		if changed {
			refreshed = append(refreshed, slot)
		}
	}

	if len(refreshed) == 0 {
		return nil
	}
	if err := s.store.ClearImageChanged(ctx, asset.ID, refreshed...); err != nil {
		return err
	}
	summary.Cleared += len(refreshed)
	return nil
}
