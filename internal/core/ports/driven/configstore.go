package driven

import (
	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// ConfigStore persists engine configuration between sessions.
type ConfigStore interface {
	// Defaults returns the configured request defaults.
	Defaults() domain.Defaults

	// SetDefaults stores new request defaults.
	SetDefaults(d domain.Defaults) error
}
