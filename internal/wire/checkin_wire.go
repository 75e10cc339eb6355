package wire

import (
	"ticket-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCheckin(r chi.Router, checkinHandler *adaptor.CheckinHandler) {
	// POST /api/verify - door check-in: scan a ticket, mark it used
	r.Post("/api/verify", checkinHandler.Verify)
}
