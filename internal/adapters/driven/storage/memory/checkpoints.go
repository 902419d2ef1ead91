package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure Checkpoints implements the interface.
var _ driven.CheckpointCoordinator = (*Checkpoints)(nil)

// snapshot captures every document's text at one moment.
type snapshot struct {
	cp        domain.Checkpoint
	createdAt time.Time
	text      map[string]string
}

// Checkpoints is an in-memory checkpoint coordinator over a workspace.
// Begin snapshots every document (live buffers included); kept
// snapshots form the undo stack, discarded ones vanish.
type Checkpoints struct {
	ws   *Workspace
	mu   sync.Mutex
	open map[string]*snapshot
	kept []*snapshot
}

// NewCheckpoints creates a coordinator over a workspace.
func NewCheckpoints(ws *Workspace) *Checkpoints {
	return &Checkpoints{
		ws:   ws,
		open: make(map[string]*snapshot),
	}
}

// Begin snapshots the book under an undo label.
func (c *Checkpoints) Begin(ctx context.Context, label string) (domain.Checkpoint, error) {
	snap := &snapshot{
		cp:        domain.Checkpoint{ID: uuid.NewString(), Label: label},
		createdAt: time.Now(),
		text:      make(map[string]string),
	}
	for _, name := range c.ws.Names() {
		raw, err := c.ws.RawText(ctx, name)
		if err != nil {
			return domain.Checkpoint{}, fmt.Errorf("snapshotting %s: %w", name, err)
		}
		snap.text[name] = raw
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.open[snap.cp.ID] = snap
	return snap.cp, nil
}

// Keep commits the checkpoint onto the undo stack.
func (c *Checkpoints) Keep(_ context.Context, cp domain.Checkpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.open[cp.ID]
	if !ok {
		return fmt.Errorf("checkpoint %s: %w", cp.ID, domain.ErrNotFound)
	}
	delete(c.open, cp.ID)
	c.kept = append(c.kept, snap)
	return nil
}

// Discard drops the checkpoint without keeping it.
func (c *Checkpoints) Discard(_ context.Context, cp domain.Checkpoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.open[cp.ID]; !ok {
		return fmt.Errorf("checkpoint %s: %w", cp.ID, domain.ErrNotFound)
	}
	delete(c.open, cp.ID)
	return nil
}

// Kept returns the committed checkpoints, oldest first.
func (c *Checkpoints) Kept() []domain.Checkpoint {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Checkpoint, len(c.kept))
	for i, snap := range c.kept {
		out[i] = snap.cp
	}
	return out
}

// Restore rewinds the workspace to the most recently kept checkpoint
// and pops it off the undo stack.
func (c *Checkpoints) Restore(ctx context.Context) (domain.Checkpoint, error) {
	c.mu.Lock()
	if len(c.kept) == 0 {
		c.mu.Unlock()
		return domain.Checkpoint{}, fmt.Errorf("no kept checkpoint: %w", domain.ErrNotFound)
	}
	snap := c.kept[len(c.kept)-1]
	c.kept = c.kept[:len(c.kept)-1]
	c.mu.Unlock()

	for name, raw := range snap.text {
		if err := c.ws.WriteRawText(ctx, name, raw); err != nil {
			return snap.cp, fmt.Errorf("restoring %s: %w", name, err)
		}
	}
	return snap.cp, nil
}
