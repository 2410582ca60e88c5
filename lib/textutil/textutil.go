package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^\d.-]`)

// CoerceInt converts noisy display text into an integer on a best-effort
// basis. Every rune that is not a digit, decimal point or minus sign is
// stripped before parsing; anything that still fails to parse becomes 0.
// "N/A", "" and a genuine zero are indistinguishable by design.
func CoerceInt(text string) int {
	cleaned := nonNumeric.ReplaceAllString(text, "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(value)
}

var duration = regexp.MustCompile(`\d+:\d+:\d+`)
var leadingDuration = regexp.MustCompile(`^\d+:\d+:\d+`)

// CountDurations counts substrings shaped like an elapsed time, e.g. "0:36:26".
func CountDurations(text string) int {
	return len(duration.FindAllString(text, -1))
}

// HasLeadingDuration reports whether text starts with an elapsed-time string.
func HasLeadingDuration(text string) bool {
	return leadingDuration.MatchString(text)
}

// ContainsAny reports whether text contains at least one of the given
// substrings. Matching is case sensitive.
func ContainsAny(text string, subs []string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// IsDigits reports whether s is non-empty and consists of ascii digits only.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var innerWhitespace = regexp.MustCompile(`\s+`)

// CollapseSpace trims text and collapses runs of whitespace into single spaces.
func CollapseSpace(text string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(text), " ")
}
