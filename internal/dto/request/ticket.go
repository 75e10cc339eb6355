package request

type CreateTicketRequest struct {
	BuyerName string `json:"buyer_name" validate:"required"`
	Category  string `json:"ticket_category,omitempty"`
	Seat      string `json:"seat,omitempty"`
	SerialNo  int    `json:"serial_no,omitempty" validate:"omitempty,gte=1"`
}
