// Package catalog persists download entries in a local SQLite database.
//
// An entry pairs a destination directory with the URLs downloaded into it and
// remembers the outcome of its most recent run. The schema is embedded and
// version-checked on open; mismatched databases are rejected rather than
// migrated. A one-shot importer accepts the legacy config.json layout.
package catalog
