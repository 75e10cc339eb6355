package adaptor

import (
	"ticket-office/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Ticket  *TicketHandler
	Checkin *CheckinHandler
	Pool    *PoolHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Ticket:  NewTicketHandler(service.Ticket, log),
		Checkin: NewCheckinHandler(service.Checkin, log),
		Pool:    NewPoolHandler(service.Pool, log),
		Admin:   NewAdminHandler(service.Pool, log),
	}
}
