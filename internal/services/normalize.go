package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultAssumedYear is applied to abbreviated date cells ("Sat Jun 21")
// that carry no year. Documents spanning a year boundary will be misdated;
// callers override per run rather than the scraper guessing.
const DefaultAssumedYear = 2025

// clockLayouts are tried in order before the permissive pattern kicks in
var clockLayouts = []string{"15:04:05", "15:04", "3:04 PM", "3:04PM"}

var permissiveClockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*([ap]m)?`)

var monthAbbrevs = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var shortDatePattern = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+(\d{1,2})`)

var longDatePattern = regexp.MustCompile(`([A-Z][a-z]+)\s+(\d{1,2}),?\s+(\d{4})`)

// fallbackDateLayouts handle plain numeric and written-out dates when the
// month-day-year pattern search finds nothing usable
var fallbackDateLayouts = []string{"2006-1-2", "1/2/2006", "1/2/06", "January 2, 2006", "Jan 2, 2006"}

// ParseClockTime converts loosely formatted time-of-day text into canonical
// HH:MM:SS form. The second return is false when the text is unparseable;
// there is no fallback to a default time.
func ParseClockTime(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	upper := strings.ToUpper(text)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, upper); err == nil {
			return t.Format("15:04:05"), true
		}
	}

	// Permissive extraction: grab H(H):MM anywhere in the text with an
	// optional trailing meridiem
	match := permissiveClockPattern.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(match[1])
	minute, _ := strconv.Atoi(match[2])
	switch {
	case match[3] == "pm" && hour < 12:
		hour += 12
	case match[3] == "am" && hour == 12:
		hour = 0
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute), true
}

// ParseShortDate extracts an abbreviated month-day date ("Sat\nJun 21") and
// resolves it to ISO form using assumedYear (DefaultAssumedYear when zero).
// The match is case-sensitive; weekday prefixes and newlines are tolerated.
func ParseShortDate(text string, assumedYear int) (string, bool) {
	if assumedYear <= 0 {
		assumedYear = DefaultAssumedYear
	}

	text = strings.ReplaceAll(strings.TrimSpace(text), "\n", " ")
	match := shortDatePattern.FindStringSubmatch(text)
	if match == nil {
		return "", false
	}

	parsed, err := time.Parse("2006 Jan 2", fmt.Sprintf("%d %s %s", assumedYear, match[1], match[2]))
	if err != nil {
		return "", false
	}
	return parsed.Format("2006-01-02"), true
}

// ParseLongDate resolves full-month date text ("Saturday June 21, 2025") to
// ISO form, falling back to a small set of numeric and written-out layouts.
func ParseLongDate(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if match := longDatePattern.FindStringSubmatch(text); match != nil {
		candidate := fmt.Sprintf("%s %s %s", match[1], match[2], match[3])
		if parsed, err := time.Parse("January 2 2006", candidate); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}

	for _, layout := range fallbackDateLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return parsed.Format("2006-01-02"), true
		}
	}
	return "", false
}

// ContainsMonthAbbrev reports whether text mentions a 3-letter month
// abbreviation. Positional layouts mark date cells this way.
func ContainsMonthAbbrev(text string) bool {
	for _, month := range monthAbbrevs {
		if strings.Contains(text, month) {
			return true
		}
	}
	return false
}

// ContainsMonthName reports whether text mentions a full month name.
// Header-driven layouts spell dates out ("June 21, 2025").
func ContainsMonthName(text string) bool {
	for _, month := range monthNames {
		if strings.Contains(text, month) {
			return true
		}
	}
	return false
}
