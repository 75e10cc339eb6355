package response

import "time"

type VerifyStatus string

const (
	VerifyStatusOK          VerifyStatus = "OK"
	VerifyStatusAlreadyUsed VerifyStatus = "ALREADY_USED"
	VerifyStatusInvalid     VerifyStatus = "INVALID"
	VerifyStatusError       VerifyStatus = "ERROR"
)

type VerifyResponse struct {
	Status    VerifyStatus `json:"status"`
	TicketID  string       `json:"ticket_id,omitempty"`
	BuyerName string       `json:"buyer_name,omitempty"`
	UsedAt    *time.Time   `json:"used_at,omitempty"`
	Error     string       `json:"error,omitempty"`
}
