package testsupport

import (
	"path/filepath"
	"testing"

	"assetmirror/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.DatabasePath = filepath.Join(base, "state", "catalog.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.ReportDir = filepath.Join(base, "reports")
	cfgVal.Paths.RequestsFile = filepath.Join(base, "library", "Requests.txt")
	cfgVal.Site.BaseURL = "https://catalog.test/assets/allassets"
	cfgVal.Site.PageSettleMillis = 0
	cfgVal.Site.DetailSettleMillis = 0
	cfgVal.Site.ScrollPauseMillis = 0

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBaseURL overrides the catalog listing URL on the test config.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Site.BaseURL = url
	}
}

// WithInboxDir overrides the inbox directory name on the test config.
func WithInboxDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.InboxDir = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}
