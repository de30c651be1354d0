// Package catalog persists the mirrored catalog taxonomy in SQLite.
//
// The Store owns the single database connection of a run and exposes typed
// CRUD over asset types, categories, and assets. Assets are identified across
// runs by their source URL; names may collide. Every failure returned by the
// Store wraps services.ErrStore so callers can tell store connectivity
// problems apart from classification or filesystem failures.
//
// Schema changes bump schemaVersion in schema.go; the database is a cache of
// the remote listing and can be rebuilt by rescanning.
package catalog
