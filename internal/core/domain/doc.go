// Package domain defines the core business entities for Replaca.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchRequest: One find/replace query with its options
//   - Pattern: A compiled, direction-aware matcher
//   - DocumentRef: Identity and category of a book document
//   - MatchOutcome: The result of one engine operation
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
