package models

import (
	"strings"
	"testing"
)

func TestScheduleRecord_Key(t *testing.T) {
	record := ScheduleRecord{
		EventName:      "National Championships",
		Date:           "2025-06-21",
		SessionID:      3,
		Platform:       "Red",
		WeightCategory: "81",
	}

	eventKey := record.Key(KeyModeEvent)
	if eventKey != "National Championships|3|Red|81" {
		t.Errorf("Expected event key, got %q", eventKey)
	}

	dateKey := record.Key(KeyModeDate)
	if dateKey != "2025-06-21|3|Red|81" {
		t.Errorf("Expected date key, got %q", dateKey)
	}
}

func TestScheduleRecord_SortKey(t *testing.T) {
	record := ScheduleRecord{
		Date:           "2025-06-21",
		SessionID:      3,
		Platform:       "Red",
		WeightCategory: "81",
	}

	eventSK := record.SortKey(KeyModeEvent)
	if eventSK != "SESSION#003#PLATFORM#Red#CLASS#81" {
		t.Errorf("Expected zero-padded event sort key, got %q", eventSK)
	}

	dateSK := record.SortKey(KeyModeDate)
	if dateSK != "DATE#2025-06-21#SESSION#003#PLATFORM#Red#CLASS#81" {
		t.Errorf("Expected date-first sort key, got %q", dateSK)
	}
}

func TestScheduleRecord_IsComplete(t *testing.T) {
	complete := ScheduleRecord{
		EventName:      "Test Meet",
		Date:           "2025-06-21",
		SessionID:      1,
		Platform:       PlatformRed,
		StartTime:      "09:00:00",
		WeighInTime:    "08:00:00",
		WeightCategory: "81",
	}
	if !complete.IsComplete() {
		t.Error("Expected fully populated record to be complete")
	}

	tests := []struct {
		name   string
		mutate func(*ScheduleRecord)
	}{
		{"missing meet", func(r *ScheduleRecord) { r.EventName = "" }},
		{"missing date", func(r *ScheduleRecord) { r.Date = "" }},
		{"zero session", func(r *ScheduleRecord) { r.SessionID = 0 }},
		{"unknown platform", func(r *ScheduleRecord) { r.Platform = "Green" }},
		{"missing start time", func(r *ScheduleRecord) { r.StartTime = "" }},
		{"missing weigh-in time", func(r *ScheduleRecord) { r.WeighInTime = "" }},
		{"missing weight category", func(r *ScheduleRecord) { r.WeightCategory = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := complete
			tt.mutate(&record)
			if record.IsComplete() {
				t.Error("Expected record to be incomplete")
			}
		})
	}
}

func TestGenerateRecordID(t *testing.T) {
	id := GenerateRecordID("Test Meet|1|Red|81")
	if !strings.HasPrefix(id, "sched_") {
		t.Errorf("Expected sched_ prefix, got %q", id)
	}
	if len(id) != len("sched_")+12 {
		t.Errorf("Expected id length %d, got %d", len("sched_")+12, len(id))
	}

	// Case and surrounding whitespace do not change the identity.
	if GenerateRecordID("TEST MEET|1|RED|81") != id {
		t.Error("Expected case-insensitive ids")
	}
	if GenerateRecordID("  Test Meet|1|Red|81  ") != id {
		t.Error("Expected whitespace-insensitive ids")
	}
	if GenerateRecordID("Test Meet|2|Red|81") == id {
		t.Error("Expected different keys to produce different ids")
	}
}

func TestMeetPK(t *testing.T) {
	if got := MeetPK("Test Meet"); got != "MEET#Test Meet" {
		t.Errorf("Expected MEET# prefix, got %q", got)
	}
}

func TestCanonicalPlatform(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Red", "Red"},
		{"red", "Red"},
		{"WHITE", "White"},
		{" blue ", "Blue"},
		{"Green", ""},
		{"", ""},
		{"Red Platform", ""},
	}

	for _, tt := range tests {
		if got := CanonicalPlatform(tt.input); got != tt.expected {
			t.Errorf("Expected CanonicalPlatform(%q) = %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestValidatePlatform(t *testing.T) {
	for _, platform := range []string{PlatformRed, PlatformWhite, PlatformBlue} {
		if !ValidatePlatform(platform) {
			t.Errorf("Expected %q to be valid", platform)
		}
	}
	if ValidatePlatform("red") {
		t.Error("Expected lowercase platform to be invalid without canonicalization")
	}
}

func TestValidateKeyMode(t *testing.T) {
	if !ValidateKeyMode(KeyModeEvent) || !ValidateKeyMode(KeyModeDate) {
		t.Error("Expected both key modes to be valid")
	}
	if ValidateKeyMode("meet") {
		t.Error("Expected unknown key mode to be invalid")
	}
}

func TestValidateStrategy(t *testing.T) {
	for _, strategy := range []string{StrategyAuto, StrategyHeaders, StrategyPositional} {
		if !ValidateStrategy(strategy) {
			t.Errorf("Expected %q to be valid", strategy)
		}
	}
	if ValidateStrategy("magic") {
		t.Error("Expected unknown strategy to be invalid")
	}
}

func TestFormatSession(t *testing.T) {
	if got := FormatSession(3, PlatformRed); got != "Session 3 (Red)" {
		t.Errorf("Expected formatted session label, got %q", got)
	}
}

func TestReconciliationResult_Counts(t *testing.T) {
	result := ReconciliationResult{
		ToAdd:     []ScheduleRecord{{}, {}},
		ToUpdate:  []RecordUpdate{{}},
		Unchanged: []ScheduleRecord{{}, {}, {}},
	}

	added, updated, unchanged := result.Counts()
	if added != 2 || updated != 1 || unchanged != 3 {
		t.Errorf("Expected counts 2/1/3, got %d/%d/%d", added, updated, unchanged)
	}
}
