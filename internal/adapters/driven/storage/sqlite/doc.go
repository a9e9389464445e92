// Package sqlite stores drafts and scheduler state in a local SQLite file.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. A single database connection backs two stores:
//
//   - DraftStore: offline Persistence API for contract drafts
//   - SchedulerStore: autosave task state and run history
//
// # Schema
//
// The schema is managed through versioned migrations in migrations/. Each
// migration is a pair of NNN_name.up.sql and NNN_name.down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.drafter/data/drafter.db
//
// Sections are stored as a JSON column; the outline is always read and
// written as a whole, so no per-section table is needed.
package sqlite
