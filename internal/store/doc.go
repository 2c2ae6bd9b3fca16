// Package store persists projects in a SQLite database under the data
// directory.
//
// Every Save appends an immutable revision holding the full project document
// (see package project), so the history of a project survives across
// sessions even though the in-memory undo stack does not. The schema is
// created and upgraded by the embedded SQL files in migrations/, applied in
// lexical order inside one transaction and tracked in schema_migrations.
//
// Open takes an advisory file lock next to the database, so only one reel
// process owns a store at a time; Close releases it.
package store
