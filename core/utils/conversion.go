package utils

import (
	"strconv"
	"strings"
)

// ParseQuantity parses a quantity field from an extract. The extracts use a
// locale decimal comma ("5,0"), which is normalized to a period before
// parsing. Unparsable or empty values coerce to 0 so downstream arithmetic
// is always defined.
func ParseQuantity(raw string) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt parses an integer field, coercing failures to 0.
func ParseInt(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		// Some exports render integers as "123.0"; fall back to float.
		f, ferr := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return i
}

// FirstDigits returns the first run of decimal digits in s, or def when
// s contains none. Both the supplier directory codes and the raw status
// labels are keyed this way.
func FirstDigits(s, def string) string {
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			return s[start:i]
		}
	}
	if start >= 0 {
		return s[start:]
	}
	return def
}
