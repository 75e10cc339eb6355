package adaptor

import (
	"encoding/json"
	"net/http"

	"ticket-office/internal/dto/request"
	"ticket-office/internal/dto/response"
	"ticket-office/internal/usecase"

	"go.uber.org/zap"
)

type CheckinHandler struct {
	service usecase.CheckinService
	log     *zap.Logger
}

func NewCheckinHandler(service usecase.CheckinService, log *zap.Logger) *CheckinHandler {
	return &CheckinHandler{
		service: service,
		log:     log.With(zap.String("handler", "checkin")),
	}
}

// Verify handles POST /api/verify. The response body is the verify outcome
// itself rather than the standard envelope, so scanner clients can read
// one uniform shape for all four outcomes.
func (h *CheckinHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeOutcome(w, http.StatusBadRequest, &response.VerifyResponse{
			Status: response.VerifyStatusError,
			Error:  "invalid request body",
		})
		return
	}

	outcome, err := h.service.Verify(r.Context(), req.Raw())
	if err != nil {
		h.log.Error("Verify failed", zap.Error(err))
		h.writeOutcome(w, http.StatusInternalServerError, &response.VerifyResponse{
			Status: response.VerifyStatusError,
			Error:  "storage error",
		})
		return
	}

	h.writeOutcome(w, statusCodeFor(outcome.Status), outcome)
}

func (h *CheckinHandler) writeOutcome(w http.ResponseWriter, code int, outcome *response.VerifyResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(outcome)
}

func statusCodeFor(status response.VerifyStatus) int {
	switch status {
	case response.VerifyStatusInvalid:
		return http.StatusNotFound
	case response.VerifyStatusError:
		return http.StatusBadRequest
	default:
		// OK and ALREADY_USED are both expected, non-error outcomes.
		return http.StatusOK
	}
}
