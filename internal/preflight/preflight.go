package preflight

import (
	"context"

	"assetmirror/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Pinger is satisfied by the catalog store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunAll executes the preflight checks for the given config. The database
// check is skipped when db is nil; the remote listing check only runs when
// checkSite is set.
func RunAll(ctx context.Context, cfg *config.Config, db Pinger, checkSite bool) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Library directory", cfg.Paths.LibraryDir),
		CheckDirectoryAccess("Inbox directory", cfg.InboxPath()),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if cfg.Paths.ReportDir != "" && cfg.Paths.ReportDir != cfg.Paths.LibraryDir {
		results = append(results, CheckDirectoryAccess("Report directory", cfg.Paths.ReportDir))
	}
	if db != nil {
		results = append(results, CheckDatabase(ctx, db))
	}
	if checkSite {
		results = append(results, CheckSite(ctx, cfg.Site.BaseURL, cfg.Site.UserAgent, cfg.SiteTimeout()))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
