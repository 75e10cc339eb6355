package response

import (
	"time"

	"ticket-office/internal/data/entity"
)

type TicketResponse struct {
	ID        string              `json:"id"`
	BuyerName string              `json:"buyer_name"`
	Category  string              `json:"ticket_category,omitempty"`
	Seat      string              `json:"seat,omitempty"`
	Status    entity.TicketStatus `json:"status"`
	SerialNo  int                 `json:"serial_no"`
	IssuedAt  time.Time           `json:"issued_at"`
	UsedAt    *time.Time          `json:"used_at,omitempty"`
}

type CreateTicketResponse struct {
	Ticket TicketResponse `json:"ticket"`
}

type RecentTicketsResponse struct {
	Tickets []TicketResponse `json:"tickets"`
}

type TicketStatsResponse struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

func NewTicketResponse(ticket *entity.Ticket) TicketResponse {
	return TicketResponse{
		ID:        ticket.ID,
		BuyerName: ticket.Buyer,
		Category:  ticket.Category,
		Seat:      ticket.Seat,
		Status:    ticket.Status,
		SerialNo:  ticket.SerialNo,
		IssuedAt:  ticket.IssuedAt,
		UsedAt:    ticket.UsedAt,
	}
}
