package payouts

import (
	"errors"
	"fmt"
)

// PaymentRequestEvtPayload is published for every change to a payment
// request. The account number is never included.
type PaymentRequestEvtPayload struct {
	RequestID      int64  `json:"request_id"`
	ArtistID       int64  `json:"artist_id"`
	ArtistName     string `json:"artist_name,omitempty"`
	Amount         string `json:"amount"`
	Method         string `json:"method,omitempty"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	Date           string `json:"date"`
}

func (p *PaymentRequestEvtPayload) Validate() error {
	if p.RequestID <= 0 {
		return errors.New("request_id not greater than zero")
	}
	if p.Amount == "" {
		return errors.New("amount is empty")
	}
	if !validStatus(p.Status) {
		return fmt.Errorf("invalid status %q", p.Status)
	}
	if p.PreviousStatus != "" && !validStatus(p.PreviousStatus) {
		return fmt.Errorf("invalid previous_status %q", p.PreviousStatus)
	}
	if p.Date == "" {
		return errors.New("date is empty")
	}

	return nil
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted || s == StatusRejected
}
