// Package services implements the driving port interfaces.
// Services contain the core find/replace logic and orchestrate
// calls to driven ports (the host workspace and its adapters).
//
// Services are pure Go with no external dependencies.
package services
