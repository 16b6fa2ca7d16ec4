package blogshell

import (
	"unicode/utf8"
)

// DateStyle selects how FormatDate renders a date.
type DateStyle int

const (
	DateLong  DateStyle = iota // January 2, 2006
	DateShort                  // Jan 2, 2006
)

// DateFallback is shown for missing or malformed dates.
const DateFallback = "Recently"

// FormatDate renders an ISO date in the given style, or "Recently" when s
// cannot be parsed.
func FormatDate(s string, style DateStyle) string {
	t, ok := parseDate(s)
	if !ok {
		return DateFallback
	}
	t = t.UTC()
	if style == DateShort {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("January 2, 2006")
}

const charsPerMinute = 1000

// ReadingTime estimates minutes to read content, never less than one.
func ReadingTime(content string) int {
	n := utf8.RuneCountInString(content)
	return max(1, (n+charsPerMinute-1)/charsPerMinute)
}
