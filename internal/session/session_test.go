package session_test

import (
	"context"
	"errors"
	"testing"

	"assetmirror/internal/logging"
	"assetmirror/internal/services"
	"assetmirror/internal/session"
	"assetmirror/internal/testsupport"
)

func TestOpenLocksCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	first, err := session.Open(cfg, session.Options{Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if first.RunID == "" {
		t.Fatal("expected run id")
	}
	if err := first.Store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	ctx := first.Context(context.Background())
	if id, ok := services.RunIDFromContext(ctx); !ok || id != first.RunID {
		t.Fatalf("expected run id in context, got %q", id)
	}

	if _, err := session.Open(cfg, session.Options{Logger: logging.NewNop()}); !errors.Is(err, session.ErrLocked) {
		t.Fatalf("expected ErrLocked for concurrent open, got %v", err)
	}

	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	second, err := session.Open(cfg, session.Options{Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("reopen after close: %v", err)
	}
	if second.RunID == first.RunID {
		t.Fatal("expected a fresh run id per session")
	}
	if err := second.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenWritesRunLog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	s, err := session.Open(cfg, session.Options{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()
	if s.LogPath == "" {
		t.Fatal("expected a per-run log path")
	}
	s.Logger.Info("hello")
	testsupport.AssertExists(t, s.LogPath)
}
