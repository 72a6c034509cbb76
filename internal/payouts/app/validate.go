package app

import (
	"github.com/cicconee/payouts/internal/platform/validation"
	"github.com/shopspring/decimal"
)

const (
	FieldAccountNumber = "account_number"
	FieldAmount        = "amount"
	FieldName          = "name"
)

var maxAmount = decimal.NewFromInt(validation.MaxAmount)

// validateDraft applies the creation rules in order and stops at the first
// failure: IBAN, then amount, then holder names.
func validateDraft(d Draft) error {
	if res := validation.IBAN(d.AccountNumber); !res.Valid {
		return &ValidationError{Field: FieldAccountNumber, Message: res.Error}
	}
	// Compared as decimals: this is the value that gets stored.
	if !d.Amount.IsPositive() {
		return &ValidationError{Field: FieldAmount, Message: validation.MsgAmountNotPositive}
	}
	if d.Amount.GreaterThan(maxAmount) {
		return &ValidationError{Field: FieldAmount, Message: validation.MsgAmountTooHigh}
	}
	// Both names share one message; the form shows them as a single block.
	if d.FirstName == "" || d.LastName == "" {
		return &ValidationError{Field: FieldName, Message: MsgNamesRequired}
	}

	return nil
}
