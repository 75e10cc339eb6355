package entity

import "errors"

var (
	ErrBuyerNameTooShort = errors.New("buyer name must be at least 2 characters")
	ErrNumberOutOfRange  = errors.New("number out of range")
	ErrNumberUnavailable = errors.New("number unavailable")
	ErrPoolExhausted     = errors.New("no free numbers left")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrTicketIDRequired  = errors.New("ticket_id required")
)
