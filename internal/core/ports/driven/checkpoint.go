package driven

import (
	"context"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
)

// CheckpointCoordinator creates restore points around destructive
// batch operations. The coordinator owns snapshot contents; the engine
// only decides between keep and discard. Implementations serialise
// begin/keep/discard with respect to any other mutation source.
type CheckpointCoordinator interface {
	// Begin snapshots the book under an undo label.
	Begin(ctx context.Context, label string) (domain.Checkpoint, error)

	// Keep commits the checkpoint as an undo point.
	Keep(ctx context.Context, cp domain.Checkpoint) error

	// Discard drops the checkpoint; used when nothing changed.
	Discard(ctx context.Context, cp domain.Checkpoint) error
}
