package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"assetmirror/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	// Equivalent of t.Chdir (Go 1.24+) for older toolchains.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(origDir) })

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.LibraryDir != filepath.Join(tempHome, "substance") {
		t.Fatalf("unexpected library dir: %q", cfg.Paths.LibraryDir)
	}
	if cfg.Paths.InboxDir != "_source" {
		t.Fatalf("unexpected inbox dir: %q", cfg.Paths.InboxDir)
	}
	if cfg.InboxPath() != filepath.Join(tempHome, "substance", "_source") {
		t.Fatalf("unexpected inbox path: %q", cfg.InboxPath())
	}
	if cfg.Paths.ReportDir != cfg.Paths.LibraryDir {
		t.Fatalf("expected report dir to default to library dir, got %q", cfg.Paths.ReportDir)
	}
	if cfg.Paths.RequestsFile != filepath.Join(cfg.Paths.LibraryDir, "Requests.txt") {
		t.Fatalf("unexpected requests file: %q", cfg.Paths.RequestsFile)
	}
	if cfg.Site.BaseURL != config.Default().Site.BaseURL {
		t.Fatalf("unexpected base url: %q", cfg.Site.BaseURL)
	}
	if !cfg.IsImageExtension(".JPG") {
		t.Fatal("expected .jpg to be the default generic image extension")
	}
	if cfg.IsImageExtension(".sbsar") {
		t.Fatal("did not expect .sbsar to be treated as an image")
	}
	if cfg.Fetch.UserAgent != cfg.Site.UserAgent {
		t.Fatalf("expected fetch user agent to inherit site user agent, got %q", cfg.Fetch.UserAgent)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LibraryDir, cfg.Paths.LogDir, filepath.Dir(cfg.Paths.DatabasePath)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "assetmirror.toml")

	type payload struct {
		Paths struct {
			LibraryDir string `toml:"library_dir"`
			InboxDir   string `toml:"inbox_dir"`
		} `toml:"paths"`
		Site struct {
			BaseURL    string `toml:"base_url"`
			ScrollStep int    `toml:"scroll_step"`
		} `toml:"site"`
		Inbox struct {
			ImageExtensions []string `toml:"image_extensions"`
		} `toml:"inbox"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.LibraryDir = filepath.Join(tempDir, "mirror")
	custom.Paths.InboxDir = "incoming"
	custom.Site.BaseURL = "file:///srv/catalog/index.html"
	custom.Site.ScrollStep = 500
	custom.Inbox.ImageExtensions = []string{"PNG", ".jpg", "png"}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.InboxPath() != filepath.Join(tempDir, "mirror", "incoming") {
		t.Fatalf("unexpected inbox path: %q", cfg.InboxPath())
	}
	if cfg.Site.ScrollStep != 500 {
		t.Fatalf("expected scroll step 500, got %d", cfg.Site.ScrollStep)
	}
	if got := strings.Join(cfg.Inbox.ImageExtensions, ","); got != ".png,.jpg" {
		t.Fatalf("unexpected image extensions: %q", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
	if cfg.Site.EntryReference != "source-asset-thumbnail" {
		t.Fatalf("expected entry reference default, got %q", cfg.Site.EntryReference)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "source-asset-thumbnail") {
		t.Fatalf("sample config missing entry reference: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Paths.InboxDir != "_source" {
		t.Fatalf("expected sample inbox dir _source, got %q", cfg.Paths.InboxDir)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Site.RequestTimeout = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive timeout")
	}

	cfg = config.Default()
	cfg.Paths.InboxDir = "a/b"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for nested inbox dir")
	}

	cfg = config.Default()
	cfg.Site.BaseURL = "ftp://example.com"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}

	cfg = config.Default()
	cfg.Site.CategoryReference = "/other"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when category reference does not extend type reference")
	}

	cfg = config.Default()
	cfg.Logging.Level = "chatty"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
