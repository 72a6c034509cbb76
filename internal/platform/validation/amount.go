package validation

import (
	"math"
	"strconv"
	"strings"
)

// MaxAmount is the largest single withdrawal, inclusive.
const MaxAmount = 1_000_000

// Amount parses raw as a number and applies AmountValue. Unparsable input
// fails the same way as a non-positive amount.
func Amount(raw string) Result {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fail(MsgAmountNotPositive)
	}
	return AmountValue(v)
}

func AmountValue(v float64) Result {
	if math.IsNaN(v) || v <= 0 {
		return fail(MsgAmountNotPositive)
	}
	if v > MaxAmount {
		return fail(MsgAmountTooHigh)
	}
	return ok()
}

// Percentage accepts the closed interval [0, 100].
func Percentage(v float64) Result {
	if math.IsNaN(v) || v < 0 || v > 100 {
		return fail(MsgPercentage)
	}
	return ok()
}
