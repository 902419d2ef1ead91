// Package driven defines the interfaces that core calls OUT to the host.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and the host (or the bundled
// adapters) implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - Workspace: The open book: live editors, raw document access,
//     current-document identity
//   - LiveDocument: A materialised document with a cursor
//   - GroupProvider: Named document groups in display order
//   - CheckpointCoordinator: Undo snapshots around batch mutations
//
// # Optional Interfaces
//
// These can be nil - the engine degrades gracefully:
//
//   - FunctionRegistry: Replace functions. Without it, function-mode
//     searches fail with NoSuchFunction.
//   - ConfigStore: Engine defaults. Without it, stock defaults apply.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
