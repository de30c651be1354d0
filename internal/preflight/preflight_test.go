package preflight

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"assetmirror/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestCheckDatabase(t *testing.T) {
	if r := CheckDatabase(context.Background(), pinger{}); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckDatabase(context.Background(), pinger{err: errors.New("locked")}); r.Passed {
		t.Fatal("expected failure when ping fails")
	}
}

func TestCheckSite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := context.Background()
	if r := CheckSite(ctx, srv.URL+"/assets", "ua", time.Second); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckSite(ctx, srv.URL+"/missing", "ua", time.Second); r.Passed {
		t.Fatal("expected failure for 404 listing")
	}
	if r := CheckSite(ctx, "not a url", "", time.Second); r.Passed {
		t.Fatal("expected failure for invalid url")
	}

	listing := filepath.Join(t.TempDir(), "index.html")
	if err := os.WriteFile(listing, []byte("<html></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckSite(ctx, "file://"+listing, "", 0); !r.Passed {
		t.Fatalf("expected local listing to pass, got %s", r.Detail)
	}
}

func TestRunAll(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(context.Background(), cfg, pinger{}, false)
	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	for _, name := range []string{"Library directory", "Log directory", "Catalog database"} {
		if !byName[name].Passed {
			t.Fatalf("expected %s to pass, got %+v", name, byName[name])
		}
	}
	if _, ok := byName["Catalog listing"]; ok {
		t.Fatal("did not expect site check without checkSite")
	}
	if RunAll(context.Background(), nil, nil, false) != nil {
		t.Fatal("expected nil results for nil config")
	}
}
