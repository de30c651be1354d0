// Package services defines shared utilities consumed by the scan, fetch and
// reconcile passes.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, pass names, categories and asset IDs
//     for logging.
//   - Structured error markers plus the Wrap helper so callers can decide with
//     errors.Is whether a failure abandons one category or the whole pass.
//
// Use these helpers when wiring new pass logic so error handling and
// observability stay uniform across commands.
package services
