// Package logging assembles structured slog loggers and formatting helpers used
// across assetmirror commands.
//
// It owns the console/JSON handlers, tees every record into a per-run JSON log
// file, and exposes context-aware helpers so pass code can tag log lines with
// run IDs, pass names, categories, and asset IDs. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
