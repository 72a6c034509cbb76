package validation

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// Optional +34/0034 prefix, then a Spanish number starting with 6, 7, 8 or 9.
	phonePattern = regexp.MustCompile(`^(\+34|0034)?[6789]\d{8}$`)

	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")
)

// Email is a shallow syntactic check: no DNS lookup, no quoted local parts.
func Email(raw string) Result {
	if !emailPattern.MatchString(raw) {
		return fail(MsgEmail)
	}
	return ok()
}

func Phone(raw string) Result {
	if !phonePattern.MatchString(phoneSeparators.Replace(raw)) {
		return fail(MsgPhone)
	}
	return ok()
}

func Required(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return fail(MsgRequired)
	}
	return ok()
}
