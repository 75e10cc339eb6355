package wire

import (
	"ticket-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler) {
	// POST /api/admin/clear - destructive: wipe ledger, reseed pool
	r.Post("/api/admin/clear", adminHandler.Clear)
}
