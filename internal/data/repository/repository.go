package repository

import (
	"context"
	"fmt"

	"ticket-office/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Pool   PoolRepository
	Ticket TicketRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Pool:   NewPoolRepository(db, log),
		Ticket: NewTicketRepository(db, log),
		db:     db,
	}
}

// WithTx runs fn inside one database transaction; repository calls made
// with the ctx it passes to fn all join that transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, fn)
}

// WithSnapshotTx runs fn inside a repeatable-read transaction so every
// read in fn observes the same point-in-time state.
func (r *Repository) WithSnapshotTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := r.db.Exec(ctx, `SET TRANSACTION ISOLATION LEVEL REPEATABLE READ`); err != nil {
			return fmt.Errorf("set snapshot isolation: %w", err)
		}
		return fn(ctx)
	})
}

// Checkpoint asks the server to flush write-ahead state into the main
// data files before a snapshot is taken.
func (r *Repository) Checkpoint(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `CHECKPOINT`); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	return nil
}
