package services

import (
	"regexp"
	"strconv"
	"strings"

	"weightlifting-schedule-scraper/internal/models"
)

// ColumnMap assigns a role to each column index of a table or section.
type ColumnMap struct {
	Date           int
	Session        int
	Platform       int
	WeighIn        int
	StartTime      int
	WeightCategory int
}

// PositionalColumns is the fixed column order of headerless schedule
// tables.
var PositionalColumns = ColumnMap{Date: 0, Session: 1, Platform: 2, WeighIn: 3, StartTime: 4, WeightCategory: 6}

// DefaultHeaderColumns fills roles a header row leaves unlabeled.
var DefaultHeaderColumns = ColumnMap{Date: 0, Session: 1, Platform: 2, WeighIn: 3, StartTime: 4, WeightCategory: 7}

// dateStyle selects how in-row date cells are recognized and parsed:
// positional layouts abbreviate months, header-driven layouts spell them out.
type dateStyle int

const (
	dateStyleAbbrev dateStyle = iota
	dateStyleFull
)

// RawEntry holds one row's typed fields before record construction.
type RawEntry struct {
	Date           string
	SessionID      int
	Platform       string
	StartTime      string // HH:MM:SS
	WeighInTime    string // HH:MM:SS
	WeightCategory string
}

// groupSuffixPattern matches a trailing single-letter group suffix. Only
// A through E name groups; a trailing F is part of the category itself.
var groupSuffixPattern = regexp.MustCompile(`\s+[A-E]$`)

// StripGroupSuffix removes a trailing group letter from weight-category
// text: "81 A" becomes "81", "81 F" stays intact.
func StripGroupSuffix(category string) string {
	return strings.TrimSpace(groupSuffixPattern.ReplaceAllString(category, ""))
}

// extractRow applies the column map to one data row and returns its typed
// fields. Date and session are inherited from the arguments when the row
// omits them; an in-row date (recognized per style) or numeric session
// overrides the inherited value and is returned in the entry so the caller
// can fold it back into its parse context.
//
// The row is rejected, with no entry, when the platform cell is not one of
// the three known lanes, when either time cell is empty or unparseable, or
// when neither an inherited nor an in-row date or session is available.
// This is the only place records come into existence; nothing downstream
// sees partial rows.
func extractRow(row []string, cols ColumnMap, date string, session int, style dateStyle, assumedYear int) (RawEntry, bool) {
	platform := models.CanonicalPlatform(cellAt(row, cols.Platform))
	if platform == "" {
		return RawEntry{}, false
	}

	startText := cellAt(row, cols.StartTime)
	weighText := cellAt(row, cols.WeighIn)
	if startText == "" || weighText == "" {
		return RawEntry{}, false
	}

	if inRowDate, ok := parseDateCell(cellAt(row, cols.Date), style, assumedYear); ok {
		date = inRowDate
	}
	if sessionText := cellAt(row, cols.Session); isDigits(sessionText) {
		session, _ = strconv.Atoi(sessionText)
	}
	if date == "" || session == 0 {
		return RawEntry{}, false
	}

	startTime, ok := ParseClockTime(startText)
	if !ok {
		return RawEntry{}, false
	}
	weighInTime, ok := ParseClockTime(weighText)
	if !ok {
		return RawEntry{}, false
	}

	return RawEntry{
		Date:           date,
		SessionID:      session,
		Platform:       platform,
		StartTime:      startTime,
		WeighInTime:    weighInTime,
		WeightCategory: StripGroupSuffix(cellAt(row, cols.WeightCategory)),
	}, true
}

// parseDateCell recognizes and parses an in-row date cell for the given
// style. Cells without the style's month marker are not dates.
func parseDateCell(text string, style dateStyle, assumedYear int) (string, bool) {
	if text == "" {
		return "", false
	}
	if style == dateStyleAbbrev {
		if !ContainsMonthAbbrev(text) {
			return "", false
		}
		return ParseShortDate(text, assumedYear)
	}
	if !ContainsMonthName(text) {
		return "", false
	}
	return ParseLongDate(text)
}

// cellAt returns the trimmed cell at idx, or "" when the row is shorter.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isDigits(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
