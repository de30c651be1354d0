// Package page defines the browser capability set the scan engine depends
// on: navigation, element queries scoped to a parent, attribute and text
// reads, inline style lookup and scrolling.
//
// Elements are opaque handles. A handle issued before the most recent
// Navigate is stale and every driver method rejects it with
// ErrStaleElement, which classifies as a per-category failure.
//
// The htmldoc subpackage provides a static implementation backed by
// golang.org/x/net/html.
package page
