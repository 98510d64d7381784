package services

import (
	"testing"
)

func TestBuildColumnMap_CustomOrder(t *testing.T) {
	header := []string{"Platform", "Session", "Date", "Weigh", "Time", "Weight\nCategory"}

	cols := buildColumnMap(header)
	if cols.Platform != 0 {
		t.Errorf("Expected platform column 0, got %d", cols.Platform)
	}
	if cols.Session != 1 {
		t.Errorf("Expected session column 1, got %d", cols.Session)
	}
	if cols.Date != 2 {
		t.Errorf("Expected date column 2, got %d", cols.Date)
	}
	if cols.WeighIn != 3 {
		t.Errorf("Expected weigh-in column 3, got %d", cols.WeighIn)
	}
	if cols.StartTime != 4 {
		t.Errorf("Expected start-time column 4, got %d", cols.StartTime)
	}
	if cols.WeightCategory != 5 {
		t.Errorf("Expected weight-category column 5, got %d", cols.WeightCategory)
	}
}

func TestBuildColumnMap_UnlabeledRolesKeepDefaults(t *testing.T) {
	// "Weigh-in" is neither the bare "weigh" label nor a time label, so the
	// weigh-in role keeps its default index.
	header := []string{"Date", "Session", "Platform", "Weigh-in", "Start Time", "", "Weight Category"}

	cols := buildColumnMap(header)
	if cols.WeighIn != 3 {
		t.Errorf("Expected weigh-in to keep default column 3, got %d", cols.WeighIn)
	}
	if cols.StartTime != 4 {
		t.Errorf("Expected start-time column 4, got %d", cols.StartTime)
	}
	if cols.WeightCategory != 6 {
		t.Errorf("Expected weight-category column 6, got %d", cols.WeightCategory)
	}
	if cols.Date != 0 || cols.Session != 1 || cols.Platform != 2 {
		t.Errorf("Expected date/session/platform columns 0/1/2, got %d/%d/%d", cols.Date, cols.Session, cols.Platform)
	}
}

func TestParseHeaderSection_HeaderDateText(t *testing.T) {
	section := HeaderSection{
		HeaderRow: []string{"Date", "Session", "Platform", "Weigh-in", "Start Time", "", "Weight Category"},
		DateText:  "Saturday June 21, 2025",
	}
	rows := [][]string{
		{"June 21", "3", "Red", "8:00", "9:00", "—", "81"},
	}
	ctx := NewParseContext()

	entries, skipped := parseHeaderSection(rows, section, ctx, 0)
	if skipped != 0 {
		t.Errorf("Expected 0 skipped rows, got %d", skipped)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	entry := entries[0]
	if entry.Date != "2025-06-21" {
		t.Errorf("Expected date from header-adjacent text, got %q", entry.Date)
	}
	if entry.SessionID != 3 {
		t.Errorf("Expected session 3, got %d", entry.SessionID)
	}
	if entry.Platform != "Red" {
		t.Errorf("Expected platform Red, got %q", entry.Platform)
	}
	if entry.StartTime != "09:00:00" {
		t.Errorf("Expected start time 09:00:00, got %q", entry.StartTime)
	}
	if entry.WeighInTime != "08:00:00" {
		t.Errorf("Expected weigh-in time 08:00:00, got %q", entry.WeighInTime)
	}
	if entry.WeightCategory != "81" {
		t.Errorf("Expected weight category 81, got %q", entry.WeightCategory)
	}

	if ctx.CurrentDate != "2025-06-21" || ctx.CurrentSession != 3 {
		t.Errorf("Expected context seeded with 2025-06-21 session 3, got %s session %d", ctx.CurrentDate, ctx.CurrentSession)
	}
}

func TestParseHeaderSection_ScanDateColumn(t *testing.T) {
	section := HeaderSection{
		HeaderRow: []string{"Date", "Session", "Platform", "Weigh-in", "Start Time", "", "Weight Category"},
	}
	rows := [][]string{
		{"June 22, 2025", "", "", "", "", "", ""},
		{"", "4", "Red", "8:00", "9:00", "", "81"},
	}
	ctx := NewParseContext()

	entries, skipped := parseHeaderSection(rows, section, ctx, 0)
	if skipped != 1 {
		t.Errorf("Expected the date banner row counted as skipped, got %d", skipped)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2025-06-22" {
		t.Errorf("Expected date found by column scan, got %q", entries[0].Date)
	}
	if entries[0].SessionID != 4 {
		t.Errorf("Expected session 4, got %d", entries[0].SessionID)
	}
}

func TestParseHeaderSection_InheritsContext(t *testing.T) {
	section := HeaderSection{
		HeaderRow: []string{"Date", "Session", "Platform", "Weigh-in", "Start Time", "", "Weight Category"},
	}
	rows := [][]string{
		{"", "", "Red", "8:00", "9:00", "", "81"},
	}
	ctx := NewParseContext()
	ctx.CurrentDate = "2025-06-21"
	ctx.CurrentSession = 3

	entries, _ := parseHeaderSection(rows, section, ctx, 0)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	if entries[0].Date != "2025-06-21" || entries[0].SessionID != 3 {
		t.Errorf("Expected inherited 2025-06-21 session 3, got %s session %d", entries[0].Date, entries[0].SessionID)
	}
}

func TestScanDateColumn(t *testing.T) {
	rows := [][]string{
		{"", "1", "Red"},
		{"June 21, 2025", "2", "White"},
	}

	date, ok := scanDateColumn(rows, 0)
	if !ok {
		t.Fatal("Expected a date within the scan window")
	}
	if date != "2025-06-21" {
		t.Errorf("Expected 2025-06-21, got %q", date)
	}
}

func TestScanDateColumn_WindowLimit(t *testing.T) {
	rows := make([][]string, 0, 11)
	for i := 0; i < 10; i++ {
		rows = append(rows, []string{"", "1", "Red"})
	}
	rows = append(rows, []string{"June 21, 2025", "2", "White"})

	if date, ok := scanDateColumn(rows, 0); ok {
		t.Errorf("Expected date past the scan window to be ignored, got %q", date)
	}
}
