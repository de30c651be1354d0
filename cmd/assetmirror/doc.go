// Package main hosts the assetmirror CLI entrypoint and command graph.
//
// Each subcommand opens a locked session, runs one pass from the internal
// packages (scan, folder reconciliation, inbox transfer, image fetch or a
// report) and prints a summary table, also when the pass fails part way.
//
// Keep this package thin: new behaviour belongs in internal packages and is
// surfaced here through a command or flag.
package main
