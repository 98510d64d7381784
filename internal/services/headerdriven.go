package services

import "strings"

// dateScanRows is how many leading data rows of a section are searched for
// a spelled-out date when no header-adjacent date text was captured.
const dateScanRows = 10

// buildColumnMap maps header cell text onto column roles using ordered,
// mutually exclusive rules. The weight-category rule runs before the plain
// "time"/"weigh" rules because those keywords also appear inside longer
// labels. Roles no header cell claims keep their default indices.
func buildColumnMap(headerRow []string) ColumnMap {
	cols := DefaultHeaderColumns

	for idx, cell := range headerRow {
		text := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(cell, "\n", " ")))
		if text == "" {
			continue
		}
		switch {
		case strings.Contains(text, "weight") && strings.Contains(text, "category"):
			cols.WeightCategory = idx
		case text == "weigh":
			cols.WeighIn = idx
		case strings.Contains(text, "date"):
			cols.Date = idx
		case strings.Contains(text, "sess"):
			cols.Session = idx
		case strings.Contains(text, "plat"):
			cols.Platform = idx
		case strings.Contains(text, "time"):
			cols.StartTime = idx
		}
	}
	return cols
}

// parseHeaderSection parses the data rows of one detected section. The
// section date comes from the captured header-adjacent text when present,
// else from scanning the leading rows of the date column; either way it
// seeds both the section-local date and the shared context so later
// sections and tables inherit it. Rows that yield entries refresh the
// local and context date and session the same way.
func parseHeaderSection(rows [][]string, section HeaderSection, ctx *ParseContext, assumedYear int) ([]RawEntry, int) {
	cols := buildColumnMap(section.HeaderRow)

	localDate := ""
	if section.DateText != "" {
		if parsed, ok := ParseLongDate(section.DateText); ok {
			localDate = parsed
			ctx.CurrentDate = parsed
		}
	}
	if localDate == "" {
		if found, ok := scanDateColumn(rows, cols.Date); ok {
			localDate = found
			ctx.CurrentDate = found
		}
	}

	localSession := 0
	var entries []RawEntry
	skipped := 0

	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}

		date := localDate
		if date == "" {
			date = ctx.CurrentDate
		}
		session := localSession
		if session == 0 {
			session = ctx.CurrentSession
		}

		entry, ok := extractRow(row, cols, date, session, dateStyleFull, assumedYear)
		if !ok {
			skipped++
			continue
		}

		localDate = entry.Date
		ctx.CurrentDate = entry.Date
		localSession = entry.SessionID
		ctx.CurrentSession = entry.SessionID
		entries = append(entries, entry)
	}

	return entries, skipped
}

// scanDateColumn searches the first dateScanRows rows' date column for
// full-month date text, returning the first cell that parses.
func scanDateColumn(rows [][]string, dateIdx int) (string, bool) {
	limit := len(rows)
	if limit > dateScanRows {
		limit = dateScanRows
	}

	for _, row := range rows[:limit] {
		cell := cellAt(row, dateIdx)
		if cell == "" || !ContainsMonthName(cell) {
			continue
		}
		if parsed, ok := ParseLongDate(cell); ok {
			return parsed, true
		}
	}
	return "", false
}
