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

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id string) (*entity.Ticket, error)
	MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error)
	Stats(ctx context.Context) (*entity.TicketStats, error)
	FindAllBySerial(ctx context.Context) ([]*entity.Ticket, error)
	DeleteAll(ctx context.Context) error
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, event_name, buyer_name, ticket_category, seat, status, issued_at, serial_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.Event,
		ticket.Buyer,
		ticket.Category,
		ticket.Seat,
		ticket.Status,
		ticket.IssuedAt,
		ticket.SerialNo,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID),
			zap.Int("serial_no", ticket.SerialNo),
		)
		return fmt.Errorf("create ticket %s: %w", ticket.ID, err)
	}

	return nil
}

func (r *ticketRepository) FindByID(ctx context.Context, id string) (*entity.Ticket, error) {
	query := `
		SELECT id, event_name, buyer_name, ticket_category, seat, status, issued_at, used_at, serial_no
		FROM tickets
		WHERE id = $1
	`

	var ticket entity.Ticket
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Event,
		&ticket.Buyer,
		&ticket.Category,
		&ticket.Seat,
		&ticket.Status,
		&ticket.IssuedAt,
		&ticket.UsedAt,
		&ticket.SerialNo,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find ticket by ID",
			zap.Error(err),
			zap.String("ticket_id", id),
		)
		return nil, fmt.Errorf("find ticket by ID %s: %w", id, err)
	}

	return &ticket, nil
}

// MarkUsed performs the single conditional redemption write. Exactly one
// caller per ticket observes true; a false result with nil error means a
// concurrent caller already won the transition.
func (r *ticketRepository) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	query := `
		UPDATE tickets
		SET status = 'used', used_at = $1
		WHERE id = $2 AND status != 'used'
	`

	tag, err := r.db.Exec(ctx, query, usedAt, id)
	if err != nil {
		r.log.Error("Failed to mark ticket used",
			zap.Error(err),
			zap.String("ticket_id", id),
		)
		return false, fmt.Errorf("mark ticket %s used: %w", id, err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *ticketRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Ticket, error) {
	query := `
		SELECT id, event_name, buyer_name, ticket_category, seat, status, issued_at, used_at, serial_no
		FROM tickets
		ORDER BY issued_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent tickets", zap.Error(err), zap.Int("limit", limit))
		return nil, fmt.Errorf("find recent tickets: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (r *ticketRepository) Stats(ctx context.Context) (*entity.TicketStats, error) {
	query := `SELECT ticket_category, COUNT(*) FROM tickets GROUP BY ticket_category`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to get ticket stats", zap.Error(err))
		return nil, fmt.Errorf("ticket stats: %w", err)
	}
	defer rows.Close()

	stats := &entity.TicketStats{ByCategory: make(map[string]int)}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			r.log.Error("Failed to scan stats row", zap.Error(err))
			return nil, fmt.Errorf("scan stats row: %w", err)
		}
		stats.ByCategory[category] = count
		stats.Total += count
	}

	return stats, rows.Err()
}

func (r *ticketRepository) FindAllBySerial(ctx context.Context) ([]*entity.Ticket, error) {
	query := `
		SELECT id, event_name, buyer_name, ticket_category, seat, status, issued_at, used_at, serial_no
		FROM tickets
		ORDER BY serial_no
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list tickets by serial", zap.Error(err))
		return nil, fmt.Errorf("list tickets by serial: %w", err)
	}
	defer rows.Close()

	return scanTickets(rows)
}

func (r *ticketRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM tickets`); err != nil {
		r.log.Error("Failed to delete all tickets", zap.Error(err))
		return fmt.Errorf("delete all tickets: %w", err)
	}
	return nil
}

func scanTickets(rows pgx.Rows) ([]*entity.Ticket, error) {
	var tickets []*entity.Ticket
	for rows.Next() {
		var ticket entity.Ticket
		err := rows.Scan(
			&ticket.ID,
			&ticket.Event,
			&ticket.Buyer,
			&ticket.Category,
			&ticket.Seat,
			&ticket.Status,
			&ticket.IssuedAt,
			&ticket.UsedAt,
			&ticket.SerialNo,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		tickets = append(tickets, &ticket)
	}
	return tickets, rows.Err()
}
