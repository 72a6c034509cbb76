package validation

import (
	"regexp"
	"time"
)

// DateLayout is the calendar date format used on every surface.
const DateLayout = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date requires the YYYY-MM-DD shape and a date that exists on the
// calendar; 2024-13-45 has the shape but is rejected.
func Date(raw string) Result {
	_, res := parseDate(raw)
	return res
}

// DateRange requires both bounds to be valid dates and end to fall strictly
// after start. Equal dates are rejected.
func DateRange(start, end string) Result {
	s, res := parseDate(start)
	if !res.Valid {
		return res
	}
	e, res := parseDate(end)
	if !res.Valid {
		return res
	}
	if !e.After(s) {
		return fail(MsgDateRange)
	}
	return ok()
}

func parseDate(raw string) (time.Time, Result) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, fail(MsgDateFormat)
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fail(MsgDateInvalid)
	}
	return t, ok()
}
