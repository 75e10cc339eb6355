package adaptor

import (
	"net/http"

	"ticket-office/internal/usecase"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

type AdminHandler struct {
	pool usecase.PoolService
	log  *zap.Logger
}

func NewAdminHandler(pool usecase.PoolService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		pool: pool,
		log:  log.With(zap.String("handler", "admin")),
	}
}

// Clear handles POST /api/admin/clear. Destructive: wipes the ledger and
// reseeds the whole number pool back to free.
func (h *AdminHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.pool.Reset(r.Context()); err != nil {
		h.log.Error("Admin clear failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Pool and ledger cleared and reseeded", nil)
}
