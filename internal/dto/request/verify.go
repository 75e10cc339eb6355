package request

// VerifyRequest accepts the scanned identifier under any of the field
// names older scanner clients send.
type VerifyRequest struct {
	TicketID string `json:"ticket_id,omitempty"`
	ID       string `json:"id,omitempty"`
	Code     string `json:"code,omitempty"`
	Text     string `json:"text,omitempty"`
}

// Raw returns the first non-empty identifier field.
func (r *VerifyRequest) Raw() string {
	for _, v := range []string{r.TicketID, r.ID, r.Code, r.Text} {
		if v != "" {
			return v
		}
	}
	return ""
}
