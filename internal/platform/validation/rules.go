package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	KindIBAN       = "iban"
	KindEmail      = "email"
	KindPhone      = "phone"
	KindAmount     = "amount"
	KindRequired   = "required"
	KindPercentage = "percentage"
	KindDate       = "date"
	KindDateRange  = "date_range"
)

var ErrUnknownKind = errors.New("unknown validation kind")

// Kinds lists every rule name accepted by Run.
func Kinds() []string {
	return []string{
		KindIBAN, KindEmail, KindPhone, KindAmount,
		KindRequired, KindPercentage, KindDate, KindDateRange,
	}
}

// Run applies the rule named by kind to text input, as received from a form
// field or command line. end is only read by KindDateRange.
func Run(kind, value, end string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case KindIBAN:
		return IBAN(value), nil
	case KindEmail:
		return Email(value), nil
	case KindPhone:
		return Phone(value), nil
	case KindAmount:
		return Amount(value), nil
	case KindRequired:
		return Required(value), nil
	case KindPercentage:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			v = math.NaN()
		}
		return Percentage(v), nil
	case KindDate:
		return Date(value), nil
	case KindDateRange:
		return DateRange(value, end), nil
	default:
		return Result{}, ErrUnknownKind
	}
}
