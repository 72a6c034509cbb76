package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Only Spanish accounts are paid out.
var spanishIBAN = regexp.MustCompile(`^ES\d{22}$`)

const ibanLength = 24

// IBAN checks that raw is a Spanish IBAN with a valid ISO 7064 MOD 97-10
// check code. Whitespace and letter case are ignored.
func IBAN(raw string) Result {
	iban := cleanIBAN(raw)
	if !spanishIBAN.MatchString(iban) {
		return fail(MsgIBANFormat)
	}
	if mod97(iban[4:]+iban[:4]) != 1 {
		return fail(MsgIBANChecksum)
	}
	return ok()
}

// FormatIBAN groups a Spanish IBAN in blocks of four characters. Anything
// else is returned cleaned but ungrouped. It does not validate.
func FormatIBAN(raw string) string {
	iban := cleanIBAN(raw)
	if !strings.HasPrefix(iban, "ES") || len(iban) != ibanLength {
		return iban
	}

	var b strings.Builder
	b.Grow(ibanLength + ibanLength/4 - 1)
	for i := 0; i < len(iban); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(iban[i : i+4])
	}
	return b.String()
}

func cleanIBAN(raw string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw))
}

// mod97 reduces the letter-substituted form of s modulo 97 one digit at a
// time. The number has 30+ digits, too wide for any native integer.
func mod97(s string) int {
	rem := 0
	add := func(d int) { rem = (rem*10 + d) % 97 }

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			add(int(c - '0'))
		case c >= 'A' && c <= 'Z':
			v := int(c) - 55
			add(v / 10)
			add(v % 10)
		default:
			return -1
		}
	}
	return rem
}
