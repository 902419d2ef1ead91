package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/custodia-labs/replaca-cli/internal/core/domain"
	"github.com/custodia-labs/replaca-cli/internal/core/ports/driven"
)

// Ensure checkpointStore implements the interface.
var _ driven.CheckpointCoordinator = (*checkpointStore)(nil)

// checkpointStore is the CheckpointCoordinator backed by the store.
// Begin snapshots the documents table inside one transaction, so a
// checkpoint is always a consistent view of the book.
type checkpointStore struct {
	store *Store
}

// Begin snapshots every persisted document under an undo label.
func (c *checkpointStore) Begin(ctx context.Context, label string) (domain.Checkpoint, error) {
	cp := domain.Checkpoint{ID: uuid.NewString(), Label: label}

	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Checkpoint{}, fmt.Errorf("beginning checkpoint: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO checkpoints (id, label) VALUES (?, ?)", cp.ID, cp.Label); err != nil {
		return domain.Checkpoint{}, fmt.Errorf("inserting checkpoint: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO checkpoint_documents (checkpoint_id, name, content)
		SELECT ?, name, content FROM documents`, cp.ID); err != nil {
		return domain.Checkpoint{}, fmt.Errorf("snapshotting documents: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Checkpoint{}, fmt.Errorf("committing checkpoint: %w", err)
	}
	return cp, nil
}

// Keep commits the checkpoint as an undo point.
func (c *checkpointStore) Keep(ctx context.Context, cp domain.Checkpoint) error {
	res, err := c.store.db.ExecContext(ctx,
		"UPDATE checkpoints SET kept = 1 WHERE id = ?", cp.ID)
	if err != nil {
		return fmt.Errorf("keeping checkpoint: %w", err)
	}
	return checkAffected(res, cp.ID)
}

// Discard drops the checkpoint and its snapshot.
func (c *checkpointStore) Discard(ctx context.Context, cp domain.Checkpoint) error {
	res, err := c.store.db.ExecContext(ctx,
		"DELETE FROM checkpoints WHERE id = ? AND kept = 0", cp.ID)
	if err != nil {
		return fmt.Errorf("discarding checkpoint: %w", err)
	}
	return checkAffected(res, cp.ID)
}

// Kept returns the committed checkpoints, oldest first.
func (c *checkpointStore) Kept(ctx context.Context) ([]domain.Checkpoint, error) {
	rows, err := c.store.db.QueryContext(ctx,
		"SELECT id, label FROM checkpoints WHERE kept = 1 ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("listing checkpoints: %w", err)
	}
	defer rows.Close()

	var cps []domain.Checkpoint
	for rows.Next() {
		var cp domain.Checkpoint
		if err := rows.Scan(&cp.ID, &cp.Label); err != nil {
			return nil, fmt.Errorf("scanning checkpoint: %w", err)
		}
		cps = append(cps, cp)
	}
	return cps, rows.Err()
}

// Restore rewinds the documents table to a kept checkpoint's snapshot
// and removes the checkpoint.
func (c *checkpointStore) Restore(ctx context.Context, cp domain.Checkpoint) error {
	tx, err := c.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning restore: %w", err)
	}
	defer tx.Rollback()

	var kept int
	err = tx.QueryRowContext(ctx,
		"SELECT kept FROM checkpoints WHERE id = ?", cp.ID).Scan(&kept)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checkpoint %s: %w", cp.ID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("looking up checkpoint: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE documents SET content = (
			SELECT content FROM checkpoint_documents
			WHERE checkpoint_id = ? AND checkpoint_documents.name = documents.name
		), updated_at = CURRENT_TIMESTAMP
		WHERE name IN (
			SELECT name FROM checkpoint_documents WHERE checkpoint_id = ?
		)`, cp.ID, cp.ID); err != nil {
		return fmt.Errorf("restoring documents: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM checkpoints WHERE id = ?", cp.ID); err != nil {
		return fmt.Errorf("removing checkpoint: %w", err)
	}
	return tx.Commit()
}

func checkAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("checkpoint %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
