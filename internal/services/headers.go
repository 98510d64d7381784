package services

import (
	"strings"

	"weightlifting-schedule-scraper/internal/models"
)

// headerKeywordThreshold is the minimum number of keyword groups a row must
// mention to qualify as a header. Thresholding at 4 of 5 keeps data rows
// that happen to contain one keyword from being misclassified.
const headerKeywordThreshold = 4

// dateLookbackRows is how far above a header the detector searches for a
// spelled-out section date.
const dateLookbackRows = 3

// HeaderSection is one detected header row plus the data rows it governs.
// Data spans Rows[Start:End] of the table the section came from.
type HeaderSection struct {
	HeaderRow []string
	Start     int
	End       int
	DateText  string // row text above the header containing a full month name, if any
}

// IsHeaderRow reports whether a row reads like a schedule table header.
func IsHeaderRow(row []string) bool {
	return headerKeywordCount(row) >= headerKeywordThreshold
}

// headerKeywordCount counts how many of the five header keyword groups
// appear in the row's concatenated cell text: "sess", "date", "plat",
// "weigh", and ("weight" with "category").
func headerKeywordCount(row []string) int {
	joined := strings.ToLower(strings.Join(row, " "))

	count := 0
	for _, keyword := range []string{"sess", "date", "plat", "weigh"} {
		if strings.Contains(joined, keyword) {
			count++
		}
	}
	if strings.Contains(joined, "weight") && strings.Contains(joined, "category") {
		count++
	}
	return count
}

// DetectSections scans a table for header rows and splits it into
// contiguous sections: each section's data ends where the next header
// begins, or at table end. An empty result signals a headerless table and
// the caller falls back to positional parsing.
func DetectSections(table models.Table) []HeaderSection {
	var sections []HeaderSection

	for idx, row := range table.Rows {
		if isBlankRow(row) || !IsHeaderRow(row) {
			continue
		}

		section := HeaderSection{
			HeaderRow: row,
			Start:     idx + 1,
			End:       len(table.Rows),
			DateText:  sectionDateText(table.Rows, idx),
		}
		sections = append(sections, section)
	}

	for i := range sections {
		if i+1 < len(sections) {
			sections[i].End = sections[i+1].Start - 1
		}
	}
	return sections
}

// sectionDateText looks up to dateLookbackRows rows above the header for
// text carrying a full month name, nearest row first.
func sectionDateText(rows [][]string, headerIdx int) string {
	for back := 1; back <= dateLookbackRows && headerIdx-back >= 0; back++ {
		prev := rows[headerIdx-back]
		if len(prev) == 0 {
			continue
		}

		var parts []string
		for _, cell := range prev {
			if trimmed := strings.TrimSpace(cell); trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
		text := strings.Join(parts, " ")
		if ContainsMonthName(text) {
			return text
		}
	}
	return ""
}

// isBlankRow reports whether every cell is empty or whitespace.
func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
