// Package reconcile keeps the local mirror tree in step with the catalog.
//
// The tree is root/{type}/{category}/{asset}/ with a loose-file inbox at
// root/{inbox}/. The reconciler creates missing folders, relocates asset
// folders whose category changed, files loose downloads into matching asset
// folders and records which offered formats are present locally. It never
// overwrites or deletes: every move re-checks both ends first.
package reconcile
