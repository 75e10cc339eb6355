package adaptor

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"ticket-office/internal/data/entity"
	"ticket-office/internal/dto/request"
	"ticket-office/internal/usecase"
	"ticket-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 200
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// CreateTicket handles POST /api/tickets
func (h *TicketHandler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.IssueTicket(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create ticket")
		return
	}

	utils.ResponseCreated(w, "success", ticket)
}

// GetByID handles GET /api/tickets/{id}
func (h *TicketHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetTicketByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetRecent handles GET /api/tickets/recent
func (h *TicketHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit := utils.ParseInt(r.URL.Query().Get("limit"), defaultRecentLimit)
	limit = utils.ClampInt(limit, maxRecentLimit)

	tickets, err := h.service.GetRecent(r.Context(), limit)
	if err != nil {
		h.handleServiceError(w, err, "get recent tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetStats handles GET /api/tickets/stats
func (h *TicketHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get ticket stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// ExportCSV handles GET /export.csv. The export is buffered so a storage
// failure still yields a 500 instead of a truncated 200.
func (h *TicketHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.service.ExportCSV(r.Context(), &buf); err != nil {
		h.log.Error("Export CSV failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="tickets.csv"`)
	w.Write(buf.Bytes())
}

// handleServiceError maps service errors for ticket operations
func (h *TicketHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, entity.ErrNumberUnavailable):
		h.log.Warn(operation+" failed - number unavailable", zap.Error(err))
		utils.ResponseConflict(w, "Number unavailable, pick another or leave it empty")

	case errors.Is(err, entity.ErrPoolExhausted):
		h.log.Warn(operation+" failed - pool exhausted", zap.Error(err))
		utils.ResponseConflict(w, "No free numbers left")

	case errors.Is(err, entity.ErrTicketNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Ticket not found")

	case errors.Is(err, entity.ErrNumberOutOfRange),
		errors.Is(err, entity.ErrBuyerNameTooShort):
		h.log.Warn(operation+" failed - invalid input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
