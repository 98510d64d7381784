package services

import (
	"testing"

	"weightlifting-schedule-scraper/internal/models"
)

func TestParsePositionalTable_ExplicitSessions(t *testing.T) {
	table := models.Table{Rows: [][]string{
		{"Sat Jun 21", "1", "Red", "8:00", "9:00", "", "81 A"},
		{"", "", "White", "8:00", "9:00", "", "89"},
		{"", "2", "Red", "10:00", "11:00", "", "96 B"},
	}}
	ctx := NewParseContext()

	entries, skipped := parsePositionalTable(table, ctx, 0)
	if skipped != 0 {
		t.Errorf("Expected 0 skipped rows, got %d", skipped)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	if entries[0].Date != "2025-06-21" || entries[0].SessionID != 1 {
		t.Errorf("Expected first entry 2025-06-21 session 1, got %s session %d", entries[0].Date, entries[0].SessionID)
	}
	if entries[1].SessionID != 1 || entries[1].Platform != "White" {
		t.Errorf("Expected second entry to inherit session 1, got session %d (%s)", entries[1].SessionID, entries[1].Platform)
	}
	if entries[2].SessionID != 2 || entries[2].WeightCategory != "96" {
		t.Errorf("Expected third entry session 2 category 96, got session %d category %q", entries[2].SessionID, entries[2].WeightCategory)
	}
}

func TestParsePositionalTable_SessionBoundaryInference(t *testing.T) {
	// Three Red rows without session numbers: the start-time change on the
	// third row opens a new session.
	table := models.Table{Rows: [][]string{
		{"", "", "Red", "8:00", "9:00", "", "81"},
		{"", "", "Red", "8:00", "9:00", "", "85"},
		{"", "", "Red", "9:00", "10:00", "", "89"},
	}}
	ctx := NewParseContext()
	ctx.CurrentDate = "2025-06-21"
	ctx.CurrentSession = 4

	entries, skipped := parsePositionalTable(table, ctx, 0)
	if skipped != 0 {
		t.Errorf("Expected 0 skipped rows, got %d", skipped)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	sessions := []int{entries[0].SessionID, entries[1].SessionID, entries[2].SessionID}
	if sessions[0] != 4 || sessions[1] != 4 || sessions[2] != 5 {
		t.Errorf("Expected sessions 4, 4, 5, got %v", sessions)
	}
	if ctx.CurrentSession != 5 {
		t.Errorf("Expected context session 5 after boundary, got %d", ctx.CurrentSession)
	}
}

func TestParsePositionalTable_OnlyRedMarksBoundaries(t *testing.T) {
	table := models.Table{Rows: [][]string{
		{"", "", "Red", "8:00", "9:00", "", "81"},
		{"", "", "White", "9:00", "10:00", "", "89"},
		{"", "", "Blue", "9:00", "10:00", "", "96"},
	}}
	ctx := NewParseContext()
	ctx.CurrentDate = "2025-06-21"
	ctx.CurrentSession = 2

	entries, _ := parsePositionalTable(table, ctx, 0)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	for i, entry := range entries {
		if entry.SessionID != 2 {
			t.Errorf("Expected entry %d to stay in session 2, got %d", i, entry.SessionID)
		}
	}
}

func TestParsePositionalTable_ExplicitSessionResetsTracker(t *testing.T) {
	// The explicit session 7 on the White row clears the Red start-time
	// tracker, so the following Red row joins session 7 even though its
	// start time differs from Red's last.
	table := models.Table{Rows: [][]string{
		{"Sat Jun 21", "6", "Red", "8:00", "9:00", "", "81"},
		{"", "7", "White", "8:00", "10:00", "", "81"},
		{"", "", "Red", "9:00", "10:00", "", "85"},
	}}
	ctx := NewParseContext()

	entries, _ := parsePositionalTable(table, ctx, 0)
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	sessions := []int{entries[0].SessionID, entries[1].SessionID, entries[2].SessionID}
	if sessions[0] != 6 || sessions[1] != 7 || sessions[2] != 7 {
		t.Errorf("Expected sessions 6, 7, 7, got %v", sessions)
	}
}

func TestParsePositionalTable_RejectedBoundaryRowDoesNotCommit(t *testing.T) {
	// The second row triggers boundary inference but fails time parsing;
	// the increment must not stick, so the third row opens session 5, not 6.
	table := models.Table{Rows: [][]string{
		{"Sat Jun 21", "4", "Red", "8:00", "9:00", "", "81"},
		{"", "", "Red", "x", "10:00", "", "85"},
		{"", "", "Red", "9:00", "10:00", "", "85"},
	}}
	ctx := NewParseContext()

	entries, skipped := parsePositionalTable(table, ctx, 0)
	if skipped != 1 {
		t.Errorf("Expected 1 skipped row, got %d", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].SessionID != 4 || entries[1].SessionID != 5 {
		t.Errorf("Expected sessions 4, 5, got %d, %d", entries[0].SessionID, entries[1].SessionID)
	}
}

func TestParsePositionalTable_DateCarriedFromRejectedRow(t *testing.T) {
	// Date banner rows are full-width but have no platform; the date still
	// has to stick before the row is rejected.
	table := models.Table{Rows: [][]string{
		{"Sun Jun 22", "", "notes", "", "", "", ""},
		{"", "3", "Red", "8:00", "9:00", "", "81"},
	}}
	ctx := NewParseContext()

	entries, skipped := parsePositionalTable(table, ctx, 0)
	if skipped != 1 {
		t.Errorf("Expected the banner row to be counted as skipped, got %d", skipped)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2025-06-22" {
		t.Errorf("Expected date carried from banner row, got %q", entries[0].Date)
	}
}

func TestParsePositionalTable_ShortAndBlankRows(t *testing.T) {
	table := models.Table{Rows: [][]string{
		{"Sat Jun 21", "1", "Red", "8:00", "9:00", "", "81"},
		{"Red", "9:00"},
		{"", "", ""},
		{"", "", "Blue", "8:00", "9:00", "", "96"},
	}}
	ctx := NewParseContext()

	entries, skipped := parsePositionalTable(table, ctx, 0)
	if skipped != 1 {
		t.Errorf("Expected only the short row counted as skipped, got %d", skipped)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[1].Platform != "Blue" || entries[1].SessionID != 1 {
		t.Errorf("Expected Blue row to inherit session 1, got session %d (%s)", entries[1].SessionID, entries[1].Platform)
	}
}

func TestParsePositionalTable_AssumedYear(t *testing.T) {
	table := models.Table{Rows: [][]string{
		{"Fri Dec 5", "1", "Red", "8:00", "9:00", "", "81"},
	}}
	ctx := NewParseContext()

	entries, _ := parsePositionalTable(table, ctx, 2026)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2026-12-05" {
		t.Errorf("Expected 2026-12-05, got %q", entries[0].Date)
	}
}
