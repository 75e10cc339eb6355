package worker

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"ticket-office/internal/data/entity"

	"go.uber.org/zap"
)

func TestArtifactWorker_WriteJob(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := NewArtifactWorker(make(chan entity.Ticket), dir, zap.NewNop())

	ticket := entity.Ticket{
		ID:       "TCK-20251109-A1B2C3D4",
		Event:    "Test Event",
		Buyer:    "Aiza",
		Category: "Standard",
		Seat:     "Free seating",
		Status:   entity.TicketStatusIssued,
		IssuedAt: time.Date(2025, 11, 9, 12, 0, 0, 0, time.UTC),
		SerialNo: 7,
	}

	w.writeJob(ticket)

	data, err := os.ReadFile(filepath.Join(dir, ticket.ID+".json"))
	if err != nil {
		t.Fatalf("read job file: %v", err)
	}

	var job artifactJob
	if err := json.Unmarshal(data, &job); err != nil {
		t.Fatalf("unmarshal job: %v", err)
	}
	if job.TicketID != ticket.ID || job.SerialNo != 7 || job.BuyerName != "Aiza" {
		t.Fatalf("unexpected job contents: %+v", job)
	}
	if job.IssuedAt != "2025-11-09T12:00:00Z" {
		t.Fatalf("unexpected issued_at: %s", job.IssuedAt)
	}
}
