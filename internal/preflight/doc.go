// Package preflight provides readiness checks for the filesystem paths,
// catalog database and remote listing that assetmirror depends on.
//
// The CLI "assetmirror doctor" command runs RunAll and renders the results;
// individual checks are exported for reuse.
package preflight
