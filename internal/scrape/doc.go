// Package scrape walks the remote listing and folds what it sees into the
// catalog.
//
// Three passes exist: the taxonomy pass records asset types and categories,
// the asset pass visits every category listing and applies one Decision per
// entry, and the detail pass visits assets flagged need_to_check to collect
// their details and variant images. Entries are keyed by their link, never by
// display name, and the engine never deletes rows.
//
// A stale element abandons the current category and the pass continues; a
// classification failure or store error ends the pass with every committed
// write kept.
package scrape
