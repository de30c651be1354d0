package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the mirror root and the locations of generated artifacts.
type Paths struct {
	LibraryDir   string `toml:"library_dir"`
	InboxDir     string `toml:"inbox_dir"`
	DatabasePath string `toml:"database_path"`
	LogDir       string `toml:"log_dir"`
	ReportDir    string `toml:"report_dir"`
	RequestsFile string `toml:"requests_file"`
}

// Site describes the remote catalog listing and the reference patterns used
// to discover element signatures on it.
type Site struct {
	BaseURL            string `toml:"base_url"`
	AssetTypeReference string `toml:"asset_type_reference"`
	CategoryReference  string `toml:"category_reference"`
	EntryReference     string `toml:"entry_reference"`
	DetailsMarker      string `toml:"details_marker"`
	ViewClass          string `toml:"view_class"`
	UserAgent          string `toml:"user_agent"`
	PageSettleMillis   int    `toml:"page_settle_ms"`
	DetailSettleMillis int    `toml:"detail_settle_ms"`
	ScrollStep         int    `toml:"scroll_step"`
	ScrollPauseMillis  int    `toml:"scroll_pause_ms"`
	RequestTimeout     int    `toml:"request_timeout"`
}

// Fetch contains settings for the image download stage.
type Fetch struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
}

// Inbox contains settings for loose file placement.
type Inbox struct {
	// ImageExtensions lists the generic image extensions matched by substring.
	ImageExtensions []string `toml:"image_extensions"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for assetmirror.
//
// Configuration sections by subsystem:
//   - Paths: mirror root, inbox, database, logs and reports
//   - Site: catalog listing location and element reference patterns
//   - Fetch: image download settings
//   - Inbox: loose file matching rules
//   - Logging: log format, level, and retention
//
// A loaded Config is treated as immutable and passed by value or pointer to
// the components that need it.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Site    Site    `toml:"site"`
	Fetch   Fetch   `toml:"fetch"`
	Inbox   Inbox   `toml:"inbox"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/assetmirror/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("assetmirror.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// InboxPath returns the absolute path of the loose file inbox.
func (c *Config) InboxPath() string {
	return filepath.Join(c.Paths.LibraryDir, c.Paths.InboxDir)
}

// PageSettle returns the fixed delay applied after navigating a listing page.
func (c *Config) PageSettle() time.Duration {
	return time.Duration(c.Site.PageSettleMillis) * time.Millisecond
}

// DetailSettle returns the fixed delay applied after navigating an asset page.
func (c *Config) DetailSettle() time.Duration {
	return time.Duration(c.Site.DetailSettleMillis) * time.Millisecond
}

// ScrollPause returns the delay between scroll steps.
func (c *Config) ScrollPause() time.Duration {
	return time.Duration(c.Site.ScrollPauseMillis) * time.Millisecond
}

// SiteTimeout returns the per-request timeout for page loads.
func (c *Config) SiteTimeout() time.Duration {
	return time.Duration(c.Site.RequestTimeout) * time.Second
}

// FetchTimeout returns the per-download timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

// IsImageExtension reports whether ext (with leading dot) is treated as a
// generic image for inbox matching.
func (c *Config) IsImageExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, candidate := range c.Inbox.ImageExtensions {
		if candidate == ext {
			return true
		}
	}
	return false
}

// EnsureDirectories creates the directories assetmirror writes into.
// LibraryDir is created on a best-effort basis so read-only commands still
// work when external storage is temporarily unavailable.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.ReportDir, filepath.Dir(c.Paths.DatabasePath)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Paths.LibraryDir) != "" {
		_ = os.MkdirAll(c.Paths.LibraryDir, 0o755)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
