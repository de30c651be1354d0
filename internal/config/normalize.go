package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeFetch()
	c.normalizeInbox()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LibraryDir) == "" {
		c.Paths.LibraryDir = defaultLibraryDir
	}
	if c.Paths.LibraryDir, err = expandPath(c.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	c.Paths.InboxDir = strings.TrimSpace(c.Paths.InboxDir)
	if c.Paths.InboxDir == "" {
		c.Paths.InboxDir = defaultInboxDir
	}
	if strings.TrimSpace(c.Paths.DatabasePath) == "" {
		c.Paths.DatabasePath = defaultDatabasePath
	}
	if c.Paths.DatabasePath, err = expandPath(c.Paths.DatabasePath); err != nil {
		return fmt.Errorf("paths.database_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ReportDir) == "" {
		c.Paths.ReportDir = c.Paths.LibraryDir
	}
	if c.Paths.ReportDir, err = expandPath(c.Paths.ReportDir); err != nil {
		return fmt.Errorf("paths.report_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.RequestsFile) == "" {
		c.Paths.RequestsFile = filepath.Join(c.Paths.LibraryDir, defaultRequestsFileName)
	}
	if c.Paths.RequestsFile, err = expandPath(c.Paths.RequestsFile); err != nil {
		return fmt.Errorf("paths.requests_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.BaseURL = strings.TrimSpace(c.Site.BaseURL)
	c.Site.AssetTypeReference = strings.TrimSpace(c.Site.AssetTypeReference)
	if c.Site.AssetTypeReference == "" {
		c.Site.AssetTypeReference = defaultAssetTypeReference
	}
	c.Site.CategoryReference = strings.TrimSpace(c.Site.CategoryReference)
	if c.Site.CategoryReference == "" {
		c.Site.CategoryReference = defaultCategoryReference
	}
	c.Site.EntryReference = strings.TrimSpace(c.Site.EntryReference)
	if c.Site.EntryReference == "" {
		c.Site.EntryReference = defaultEntryReference
	}
	c.Site.DetailsMarker = strings.TrimSpace(c.Site.DetailsMarker)
	if c.Site.DetailsMarker == "" {
		c.Site.DetailsMarker = defaultDetailsMarker
	}
	c.Site.ViewClass = strings.TrimSpace(c.Site.ViewClass)
	if c.Site.ViewClass == "" {
		c.Site.ViewClass = defaultViewClass
	}
	c.Site.UserAgent = strings.TrimSpace(c.Site.UserAgent)
	if c.Site.UserAgent == "" {
		c.Site.UserAgent = defaultUserAgent
	}
	if c.Site.ScrollStep <= 0 {
		c.Site.ScrollStep = defaultScrollStep
	}
	if c.Site.PageSettleMillis < 0 {
		c.Site.PageSettleMillis = 0
	}
	if c.Site.DetailSettleMillis < 0 {
		c.Site.DetailSettleMillis = 0
	}
	if c.Site.ScrollPauseMillis < 0 {
		c.Site.ScrollPauseMillis = 0
	}
}

func (c *Config) normalizeFetch() {
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = c.Site.UserAgent
	}
}

func (c *Config) normalizeInbox() {
	exts := make([]string, 0, len(c.Inbox.ImageExtensions))
	seen := make(map[string]struct{}, len(c.Inbox.ImageExtensions))
	for _, ext := range c.Inbox.ImageExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = []string{defaultImageExtension}
	}
	c.Inbox.ImageExtensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
