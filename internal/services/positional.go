package services

import (
	"strconv"

	"weightlifting-schedule-scraper/internal/models"
)

// minPositionalRowLen guards the fixed column layout; shorter rows cannot
// carry all six roles.
const minPositionalRowLen = 7

// parsePositionalTable parses a table whose column roles are fixed by
// position, for documents that print no reliable header row. Returns the
// extracted entries and the count of non-blank rows that yielded nothing.
//
// Session boundaries are inferred when no explicit session number is
// printed: a Red-platform row whose start time differs from the last
// recorded Red start time opens a new session. The counter increments
// before the row is emitted, so the boundary row carries the new id and
// rows already emitted keep theirs. Explicit session numbers reset the
// start-time tracker so inference does not fire right after one.
func parsePositionalTable(table models.Table, ctx *ParseContext, assumedYear int) ([]RawEntry, int) {
	var entries []RawEntry
	skipped := 0

	for _, row := range table.Rows {
		if isBlankRow(row) {
			continue
		}
		if len(row) < minPositionalRowLen {
			skipped++
			continue
		}

		if dateCell := cellAt(row, PositionalColumns.Date); ContainsMonthAbbrev(dateCell) {
			if parsed, ok := ParseShortDate(dateCell, assumedYear); ok {
				ctx.CurrentDate = parsed
			}
		}

		sessionCell := cellAt(row, PositionalColumns.Session)
		startCell := cellAt(row, PositionalColumns.StartTime)
		platform := models.CanonicalPlatform(cellAt(row, PositionalColumns.Platform))

		// Tentative session for this row; the increment is committed to the
		// context only if the row is accepted, so a rejected boundary row
		// cannot bump the counter twice.
		session := ctx.CurrentSession
		if sessionCell == "" && platform == models.PlatformRed && startCell != "" && session > 0 {
			if last, seen := ctx.LastStartTimeByPlatform[models.PlatformRed]; seen && last != startCell {
				session++
			}
		}

		if isDigits(sessionCell) {
			session, _ = strconv.Atoi(sessionCell)
			ctx.CurrentSession = session
			ctx.ResetStartTimes()
		}

		entry, ok := extractRow(row, PositionalColumns, ctx.CurrentDate, session, dateStyleAbbrev, assumedYear)
		if !ok {
			skipped++
			continue
		}

		ctx.CurrentDate = entry.Date
		ctx.CurrentSession = entry.SessionID
		if entry.Platform == models.PlatformRed {
			ctx.LastStartTimeByPlatform[models.PlatformRed] = startCell
		}
		entries = append(entries, entry)
	}

	return entries, skipped
}
