package wire

import (
	"ticket-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTicket(r chi.Router, ticketHandler *adaptor.TicketHandler) {
	// POST /api/tickets - issue a ticket and claim a serial number
	r.Post("/api/tickets", ticketHandler.CreateTicket)

	// GET /api/tickets/recent - latest sales
	r.Get("/api/tickets/recent", ticketHandler.GetRecent)

	// GET /api/tickets/stats - sales by category
	r.Get("/api/tickets/stats", ticketHandler.GetStats)

	// GET /api/tickets/{id} - single ticket lookup
	r.Get("/api/tickets/{id}", ticketHandler.GetByID)

	// GET /export.csv - full ledger export
	r.Get("/export.csv", ticketHandler.ExportCSV)
}
