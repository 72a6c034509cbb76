package app

import (
	"fmt"

	"github.com/cicconee/payouts/internal/shared/payouts"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = payouts.StatusPending
	StatusCompleted Status = payouts.StatusCompleted
	StatusRejected  Status = payouts.StatusRejected
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown payment request status %q", raw)
	}
	return s, nil
}

// PaymentRequest is an artist's request to withdraw royalty balance to a
// Spanish bank account.
type PaymentRequest struct {
	ID            int64           `json:"id"`
	ArtistID      int64           `json:"artist_id"`
	ArtistName    string          `json:"artist_name"`
	ArtistPhoto   string          `json:"artist_photo,omitempty"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Amount        decimal.Decimal `json:"amount"`
	AccountNumber string          `json:"account_number"`
	Method        string          `json:"method"`
	Status        Status          `json:"status"`
	Date          string          `json:"date"`
}

// Draft is the caller-supplied part of a PaymentRequest. ID, Date and
// Status are assigned on creation.
type Draft struct {
	ArtistID      int64
	ArtistName    string
	ArtistPhoto   string
	FirstName     string
	LastName      string
	Amount        decimal.Decimal
	Method        string
	AccountNumber string
}

type Totals struct {
	Pending        decimal.Decimal `json:"pending"`
	Completed      decimal.Decimal `json:"completed"`
	Rejected       decimal.Decimal `json:"rejected"`
	PendingCount   int             `json:"pending_count"`
	CompletedCount int             `json:"completed_count"`
	RejectedCount  int             `json:"rejected_count"`
}
