package adaptor

import (
	"net/http"

	"ticket-office/internal/usecase"
	"ticket-office/pkg/utils"

	"go.uber.org/zap"
)

const defaultFreeLimit = 10

type PoolHandler struct {
	service usecase.PoolService
	log     *zap.Logger
}

func NewPoolHandler(service usecase.PoolService, log *zap.Logger) *PoolHandler {
	return &PoolHandler{
		service: service,
		log:     log.With(zap.String("handler", "pool")),
	}
}

// GetSummary handles GET /api/numbers/summary
func (h *PoolHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.log.Error("Get pool summary failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetFreeNumbers handles GET /api/numbers/free
func (h *PoolHandler) GetFreeNumbers(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultFreeLimit)

	numbers, err := h.service.GetFreeNumbers(r.Context(), limit)
	if err != nil {
		h.log.Error("Get free numbers failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "success", numbers)
}
