package entity

import (
	"time"
)

type NumberStatus string

const (
	NumberStatusFree NumberStatus = "free"
	NumberStatusUsed NumberStatus = "used"
)

// PoolEntry is one allocatable serial number. A row moves free -> used at
// most once and never back; binding metadata is written in the same
// statement that claims it.
type PoolEntry struct {
	Number     int          `db:"number"`
	Status     NumberStatus `db:"status"`
	TicketID   *string      `db:"ticket_id"`
	BuyerName  *string      `db:"buyer_name"`
	AssignedAt *time.Time   `db:"assigned_at"`
}

// PoolSummary is the read-only aggregate over the number pool.
type PoolSummary struct {
	Total int `json:"total"`
	Free  int `json:"free"`
	Used  int `json:"used"`
}
