package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ticket-office/internal/data/entity"
	"ticket-office/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PoolRepository interface {
	SeedIfEmpty(ctx context.Context, size int) error
	TryClaim(ctx context.Context, number int, ticketID, buyerName string, assignedAt time.Time) (bool, error)
	ClaimLowestFree(ctx context.Context, ticketID, buyerName string, assignedAt time.Time) (int, error)
	Summary(ctx context.Context) (*entity.PoolSummary, error)
	ListFree(ctx context.Context, limit int) ([]int, error)
	ListAll(ctx context.Context) ([]*entity.PoolEntry, error)
	ResetAll(ctx context.Context, size int) error
}

type poolRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPoolRepository(db database.PgxIface, log *zap.Logger) PoolRepository {
	return &poolRepository{
		db:  db,
		log: log.With(zap.String("repository", "pool")),
	}
}

// SeedIfEmpty populates numbers 1..size on first startup. A non-empty pool
// is left untouched; re-seeding only happens through ResetAll.
func (r *poolRepository) SeedIfEmpty(ctx context.Context, size int) error {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ticket_numbers`).Scan(&count); err != nil {
		r.log.Error("Failed to check pool size", zap.Error(err))
		return fmt.Errorf("check pool size: %w", err)
	}

	if count > 0 {
		return nil
	}

	query := `INSERT INTO ticket_numbers (number) SELECT generate_series(1, $1)`
	if _, err := r.db.Exec(ctx, query, size); err != nil {
		r.log.Error("Failed to seed number pool", zap.Error(err), zap.Int("size", size))
		return fmt.Errorf("seed number pool: %w", err)
	}

	r.log.Info("Seeded number pool", zap.Int("size", size))
	return nil
}

// TryClaim atomically flips one number from free to used and binds the
// ticket metadata. Returns false without side effects when the number is
// already used or does not exist.
func (r *poolRepository) TryClaim(ctx context.Context, number int, ticketID, buyerName string, assignedAt time.Time) (bool, error) {
	query := `
		UPDATE ticket_numbers
		SET status = 'used', ticket_id = $1, buyer_name = $2, assigned_at = $3
		WHERE number = $4 AND status = 'free'
	`

	tag, err := r.db.Exec(ctx, query, ticketID, buyerName, assignedAt, number)
	if err != nil {
		r.log.Error("Failed to claim number",
			zap.Error(err),
			zap.Int("number", number),
			zap.String("ticket_id", ticketID),
		)
		return false, fmt.Errorf("claim number %d: %w", number, err)
	}

	return tag.RowsAffected() == 1, nil
}

// ClaimLowestFree claims the lowest free number in one statement. The
// subselect locks the row it picks, so concurrent callers serialize on it
// instead of racing past each other.
func (r *poolRepository) ClaimLowestFree(ctx context.Context, ticketID, buyerName string, assignedAt time.Time) (int, error) {
	query := `
		UPDATE ticket_numbers
		SET status = 'used', ticket_id = $1, buyer_name = $2, assigned_at = $3
		WHERE number = (
			SELECT number FROM ticket_numbers
			WHERE status = 'free'
			ORDER BY number
			LIMIT 1
			FOR UPDATE
		)
		RETURNING number
	`

	var number int
	err := r.db.QueryRow(ctx, query, ticketID, buyerName, assignedAt).Scan(&number)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, entity.ErrPoolExhausted
	}
	if err != nil {
		r.log.Error("Failed to claim lowest free number",
			zap.Error(err),
			zap.String("ticket_id", ticketID),
		)
		return 0, fmt.Errorf("claim lowest free number: %w", err)
	}

	return number, nil
}

func (r *poolRepository) Summary(ctx context.Context) (*entity.PoolSummary, error) {
	query := `
		SELECT COUNT(*) AS total,
		       COALESCE(SUM(CASE WHEN status = 'free' THEN 1 ELSE 0 END), 0) AS free
		FROM ticket_numbers
	`

	var summary entity.PoolSummary
	if err := r.db.QueryRow(ctx, query).Scan(&summary.Total, &summary.Free); err != nil {
		r.log.Error("Failed to get pool summary", zap.Error(err))
		return nil, fmt.Errorf("pool summary: %w", err)
	}

	summary.Used = summary.Total - summary.Free
	return &summary, nil
}

func (r *poolRepository) ListFree(ctx context.Context, limit int) ([]int, error) {
	query := `SELECT number FROM ticket_numbers WHERE status = 'free' ORDER BY number LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list free numbers", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("list free numbers: %w", err)
	}
	defer rows.Close()

	numbers := make([]int, 0, limit)
	for rows.Next() {
		var number int
		if err := rows.Scan(&number); err != nil {
			r.log.Error("Failed to scan free number row", zap.Error(err))
			return nil, fmt.Errorf("scan free number row: %w", err)
		}
		numbers = append(numbers, number)
	}

	return numbers, rows.Err()
}

func (r *poolRepository) ListAll(ctx context.Context) ([]*entity.PoolEntry, error) {
	query := `
		SELECT number, status, ticket_id, buyer_name, assigned_at
		FROM ticket_numbers
		ORDER BY number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list pool entries", zap.Error(err))
		return nil, fmt.Errorf("list pool entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.PoolEntry
	for rows.Next() {
		var entry entity.PoolEntry
		err := rows.Scan(
			&entry.Number,
			&entry.Status,
			&entry.TicketID,
			&entry.BuyerName,
			&entry.AssignedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pool entry row", zap.Error(err))
			return nil, fmt.Errorf("scan pool entry row: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// ResetAll drops every number and reseeds 1..size as free. Callers are
// expected to wipe the ticket ledger in the same transaction.
func (r *poolRepository) ResetAll(ctx context.Context, size int) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM ticket_numbers`); err != nil {
		r.log.Error("Failed to clear number pool", zap.Error(err))
		return fmt.Errorf("clear number pool: %w", err)
	}

	query := `INSERT INTO ticket_numbers (number) SELECT generate_series(1, $1)`
	if _, err := r.db.Exec(ctx, query, size); err != nil {
		r.log.Error("Failed to reseed number pool", zap.Error(err), zap.Int("size", size))
		return fmt.Errorf("reseed number pool: %w", err)
	}

	return nil
}
