package reconcile

import (
	"log/slog"
	"os"

	"assetmirror/internal/config"
	"assetmirror/internal/fileutil"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
)

// Reconciler applies filesystem passes over a catalog snapshot.
type Reconciler struct {
	layout  Layout
	isImage func(ext string) bool
	logger  *slog.Logger
}

// New builds a reconciler from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		layout:  NewLayout(cfg),
		isImage: cfg.IsImageExtension,
		logger:  logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Layout exposes the directory mapping in use.
func (r *Reconciler) Layout() Layout {
	return r.layout
}

func (r *Reconciler) ensureDir(path string) (bool, error) {
	if fileutil.IsDir(path) {
		return false, nil
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, services.Wrap(services.ErrFilesystem, "reconcile", "create directory", r.layout.Rel(path), err)
	}
	return true, nil
}
