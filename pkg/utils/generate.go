package utils

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ==================== TICKET ID ====================

const ticketIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ticketIDPattern matches a well-formed ticket identifier anywhere in free-form
// text: three-letter tag, eight date digits, eight alphanumeric suffix chars.
var ticketIDPattern = regexp.MustCompile(`(?i)[A-Z]{3}-\d{8}-[A-Z0-9]{8}`)

// GenerateTicketID creates a unique ticket ID.
// Format: TCK-YYYYMMDD-RANDOM, random suffix drawn from crypto/rand so ids
// are not guessable from issuance order.
func GenerateTicketID() string {
	datePart := time.Now().Format("20060102")

	buf := make([]byte, 8)
	// crypto/rand.Read never returns an error on supported platforms; it
	// panics instead.
	_, _ = rand.Read(buf)
	suffix := make([]byte, 8)
	for i, b := range buf {
		suffix[i] = ticketIDAlphabet[int(b)%len(ticketIDAlphabet)]
	}

	return fmt.Sprintf("TCK-%s-%s", datePart, suffix)
}

// ExtractTicketID pulls a ticket identifier out of free-form scanner input
// (raw id, QR payload, surrounding text). Returns "" when no well-formed
// identifier is present.
func ExtractTicketID(text string) string {
	match := ticketIDPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.ToUpper(match)
}
