// Package textutil holds the name handling shared by the reconciler and the
// reports: Unicode-aware lowercase matching keys and filesystem-safe path
// segments.
//
// Matching keys fold underscores to spaces, normalize to NFC and lowercase
// with golang.org/x/text/cases so that file names produced on macOS (NFD) match
// catalog names scraped from the web.
package textutil
