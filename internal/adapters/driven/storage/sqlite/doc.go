// Package sqlite provides SQLite-backed storage for a book: the
// persisted document container and the checkpoint coordinator. A book
// stored here survives sessions, and kept checkpoints form a durable
// undo history for batch replacements.
package sqlite
