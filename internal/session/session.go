// Package session opens everything a single CLI run needs: the operator
// lock, the catalog store, a run ID and the run logger.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"assetmirror/internal/catalog"
	"assetmirror/internal/config"
	"assetmirror/internal/logging"
	"assetmirror/internal/services"
)

// ErrLocked is returned when another operator holds the catalog lock.
var ErrLocked = errors.New("catalog is locked by another assetmirror run")

// Options tune session setup.
type Options struct {
	// Console receives human-facing log output. Defaults to stderr.
	Console io.Writer
	// Color enables ANSI colouring on the console handler.
	Color bool
	// Logger replaces the config-driven run logger when set.
	Logger *slog.Logger
}

// Session bundles the run-scoped resources.
type Session struct {
	Config  *config.Config
	Store   *catalog.Store
	Logger  *slog.Logger
	RunID   string
	LogPath string

	lock      *flock.Flock
	logCloser io.Closer
}

// LockPath returns the lock file guarding the catalog database.
func LockPath(cfg *config.Config) string {
	return cfg.Paths.DatabasePath + ".lock"
}

// Open acquires the catalog lock, opens the store and builds the run logger.
// A second concurrent Open fails fast with ErrLocked.
func Open(cfg *config.Config, opts Options) (*Session, error) {
	if cfg == nil {
		return nil, services.Wrap(services.ErrConfiguration, "session", "open", "config is required", nil)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "session", "ensure directories", "", err)
	}

	lock := flock.New(LockPath(cfg))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, lock.Path())
	}

	s := &Session{Config: cfg, RunID: uuid.NewString(), lock: lock}

	if opts.Logger != nil {
		s.Logger = opts.Logger
	} else {
		logger, logPath, closer, err := logging.NewFromConfig(cfg, s.RunID, opts.Console, opts.Color)
		if err != nil {
			_ = lock.Unlock()
			return nil, fmt.Errorf("init logger: %w", err)
		}
		s.Logger, s.LogPath, s.logCloser = logger, logPath, closer
		logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: logging.RunLogPattern,
			Exclude: []string{logPath},
		})
	}

	store, err := catalog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		s.release()
		return nil, err
	}
	s.Store = store

	s.Logger.Debug("session opened",
		logging.String(logging.FieldEventType, "session_opened"),
		logging.String(logging.FieldRunID, s.RunID),
		logging.String("database", cfg.Paths.DatabasePath),
	)
	return s, nil
}

// Context stamps the run ID into ctx.
func (s *Session) Context(ctx context.Context) context.Context {
	return services.WithRunID(ctx, s.RunID)
}

// Close releases the store, the log file and the lock.
func (s *Session) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.Store != nil {
		err = s.Store.Close()
		s.Store = nil
	}
	s.release()
	return err
}

func (s *Session) release() {
	if s.logCloser != nil {
		_ = s.logCloser.Close()
		s.logCloser = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && s.Logger != nil {
			s.Logger.Warn("failed to release catalog lock", logging.Error(err))
		}
		s.lock = nil
	}
}
