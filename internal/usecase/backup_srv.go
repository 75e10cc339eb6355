package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/data/repository"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

// snapshotPrefix names snapshot directories tickets_YYYY-MM-DD_HHmm, so a
// lexicographic sort over names is a chronological sort.
const (
	snapshotPrefix     = "tickets_"
	snapshotTimeLayout = "2006-01-02_1504"
)

type BackupService interface {
	// Run writes one consistent snapshot and prunes old ones. Pruning only
	// happens after the new snapshot is confirmed on disk.
	Run(ctx context.Context) (string, error)
}

type backupService struct {
	repo *repository.Repository
	dir  string
	keep int
	log  *zap.Logger
}

func NewBackupService(repo *repository.Repository, config *utils.Config, log *zap.Logger) BackupService {
	return &backupService{
		repo: repo,
		dir:  config.Backup.Dir,
		keep: config.Backup.Keep,
		log:  log.With(zap.String("service", "backup")),
	}
}

func (s *backupService) Run(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	// Flush WAL into the main store first. The snapshot reads are
	// transactionally consistent either way, so a refused checkpoint (for
	// example, missing privilege) is not fatal.
	if err := s.repo.Checkpoint(ctx); err != nil {
		s.log.Warn("Checkpoint before snapshot failed", zap.Error(err))
	}

	stamp := time.Now().Format(snapshotTimeLayout)
	dest := filepath.Join(s.dir, snapshotPrefix+stamp)

	if err := s.writeSnapshot(ctx, dest); err != nil {
		return "", err
	}

	s.log.Info("Snapshot written", zap.String("dest", dest))

	s.prune()

	return dest, nil
}

// writeSnapshot exports both tables from a single repeatable-read
// transaction into a staging directory, then renames it into place so a
// half-written snapshot is never mistaken for a finished one.
func (s *backupService) writeSnapshot(ctx context.Context, dest string) error {
	var tickets []*entity.Ticket
	var entries []*entity.PoolEntry

	err := s.repo.WithSnapshotTx(ctx, func(ctx context.Context) error {
		var err error
		if tickets, err = s.repo.Ticket.FindAllBySerial(ctx); err != nil {
			return err
		}
		entries, err = s.repo.Pool.ListAll(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("read snapshot state: %w", err)
	}

	staging := dest + ".tmp"
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}

	if err := s.writeTicketsCSV(filepath.Join(staging, "tickets.csv"), tickets); err != nil {
		os.RemoveAll(staging)
		return err
	}
	if err := s.writeNumbersCSV(filepath.Join(staging, "ticket_numbers.csv"), entries); err != nil {
		os.RemoveAll(staging)
		return err
	}

	if err := os.Rename(staging, dest); err != nil {
		os.RemoveAll(staging)
		return fmt.Errorf("finalize snapshot: %w", err)
	}

	return nil
}

func (s *backupService) writeTicketsCSV(path string, tickets []*entity.Ticket) error {
	return writeCSV(path, []string{"id", "event_name", "buyer_name", "ticket_category", "seat", "status", "issued_at", "used_at", "serial_no"},
		len(tickets), func(i int) []string {
			t := tickets[i]
			usedAt := ""
			if t.UsedAt != nil {
				usedAt = t.UsedAt.Format(time.RFC3339)
			}
			return []string{
				t.ID,
				t.Event,
				t.Buyer,
				t.Category,
				t.Seat,
				string(t.Status),
				t.IssuedAt.Format(time.RFC3339),
				usedAt,
				strconv.Itoa(t.SerialNo),
			}
		})
}

func (s *backupService) writeNumbersCSV(path string, entries []*entity.PoolEntry) error {
	return writeCSV(path, []string{"number", "status", "ticket_id", "buyer_name", "assigned_at"},
		len(entries), func(i int) []string {
			e := entries[i]
			ticketID, buyerName, assignedAt := "", "", ""
			if e.TicketID != nil {
				ticketID = *e.TicketID
			}
			if e.BuyerName != nil {
				buyerName = *e.BuyerName
			}
			if e.AssignedAt != nil {
				assignedAt = e.AssignedAt.Format(time.RFC3339)
			}
			return []string{
				strconv.Itoa(e.Number),
				string(e.Status),
				ticketID,
				buyerName,
				assignedAt,
			}
		})
}

func writeCSV(path string, header []string, count int, record func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for i := 0; i < count; i++ {
		if err := w.Write(record(i)); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// prune keeps the newest snapshots and removes the rest. Each deletion is
// independent; one failure does not stop the others.
func (s *backupService) prune() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.log.Error("Failed to read backup dir", zap.Error(err), zap.String("dir", s.dir))
		return
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, snapshotPrefix) && !strings.HasSuffix(name, ".tmp") {
			names = append(names, name)
		}
	}

	// Newest first; the timestamp in the name sorts like the clock.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	for _, name := range names[min(s.keep, len(names)):] {
		path := filepath.Join(s.dir, name)
		if err := os.RemoveAll(path); err != nil {
			s.log.Error("Failed to remove old snapshot", zap.Error(err), zap.String("path", path))
			continue
		}
		s.log.Info("Removed old snapshot", zap.String("path", path))
	}
}
