package wire

import (
	"ticket-office/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePool(r chi.Router, poolHandler *adaptor.PoolHandler) {
	// GET /api/numbers/summary - {total, free, used}
	r.Get("/api/numbers/summary", poolHandler.GetSummary)

	// GET /api/numbers/free - lowest free numbers, ascending
	r.Get("/api/numbers/free", poolHandler.GetFreeNumbers)
}
