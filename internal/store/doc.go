// Package store persists configurations between sessions.
//
// A Prefs store is a small process-local key-value store kept under
// ~/.initium/prefs (overridable via INITIUM_PREFS). It comes in two flavours:
// a YAML file managed by its own viper instance and a SQLite database. The
// ConfigStore keeps the serialized configuration under a single key. The
// file store reads and writes configurations as JSON, YAML or TOML files
// chosen by extension.
package store
