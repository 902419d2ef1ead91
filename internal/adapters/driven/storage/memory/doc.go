// Package memory provides in-memory implementations of the workspace
// ports: a book container, live editors with cursors and marked
// regions, the workspace tying them together, and a checkpoint
// coordinator snapshotting document text. It is the reference host for
// tests and the backing workspace the CLI builds over file containers.
package memory
