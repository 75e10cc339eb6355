package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"ticket-office/internal/data/entity"

	"go.uber.org/zap"
)

// ArtifactWorker consumes committed tickets and writes one render-job
// descriptor per ticket for the downstream QR/PDF pipeline. Allocation has
// already succeeded by the time a ticket arrives here, so failures are
// logged and never surface to the issuing caller.
type ArtifactWorker struct {
	issued <-chan entity.Ticket
	dir    string
	log    *zap.Logger
}

type artifactJob struct {
	TicketID  string `json:"ticket_id"`
	Event     string `json:"event"`
	BuyerName string `json:"buyer_name"`
	Category  string `json:"ticket_category"`
	Seat      string `json:"seat"`
	SerialNo  int    `json:"serial_no"`
	IssuedAt  string `json:"issued_at"`
}

func NewArtifactWorker(issued <-chan entity.Ticket, dir string, log *zap.Logger) *ArtifactWorker {
	return &ArtifactWorker{
		issued: issued,
		dir:    dir,
		log:    log.With(zap.String("worker", "artifact")),
	}
}

func (w *ArtifactWorker) Start(ctx context.Context) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		w.log.Error("Failed to create artifact dir", zap.Error(err), zap.String("dir", w.dir))
		return
	}

	w.log.Info("Artifact worker started", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Artifact worker stopped")
			return
		case ticket := <-w.issued:
			w.writeJob(ticket)
		}
	}
}

func (w *ArtifactWorker) writeJob(ticket entity.Ticket) {
	job := artifactJob{
		TicketID:  ticket.ID,
		Event:     ticket.Event,
		BuyerName: ticket.Buyer,
		Category:  ticket.Category,
		Seat:      ticket.Seat,
		SerialNo:  ticket.SerialNo,
		IssuedAt:  ticket.IssuedAt.Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		w.log.Error("Failed to marshal artifact job", zap.Error(err), zap.String("ticket_id", ticket.ID))
		return
	}

	path := filepath.Join(w.dir, ticket.ID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		w.log.Error("Failed to write artifact job", zap.Error(err), zap.String("path", path))
		return
	}

	w.log.Info("Artifact job written",
		zap.String("ticket_id", ticket.ID),
		zap.String("path", path),
	)
}
