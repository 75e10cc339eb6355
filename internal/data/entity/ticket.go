package entity

import (
	"time"
)

type TicketStatus string

const (
	TicketStatusIssued TicketStatus = "issued"
	TicketStatusUsed   TicketStatus = "used"
)

type Ticket struct {
	ID       string       `db:"id"`
	Event    string       `db:"event_name"`
	Buyer    string       `db:"buyer_name"`
	Category string       `db:"ticket_category"`
	Seat     string       `db:"seat"`
	Status   TicketStatus `db:"status"`
	IssuedAt time.Time    `db:"issued_at"`
	UsedAt   *time.Time   `db:"used_at"`
	SerialNo int          `db:"serial_no"`
}

// TicketStats aggregates the ledger by category.
type TicketStats struct {
	Total      int
	ByCategory map[string]int
}
