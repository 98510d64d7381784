package models

import (
	"fmt"
	"time"
)

// Platform labels for the three competition lanes
const (
	PlatformRed   = "Red"
	PlatformWhite = "White"
	PlatformBlue  = "Blue"
)

// Uniqueness-key modes. The two known schedule layouts encode session
// identity differently: one keys records by meet, the other by date.
const (
	KeyModeEvent = "event" // (meet, session_id, platform, weight_class)
	KeyModeDate  = "date"  // (date, session_id, platform, weight_class)
)

// ScheduleRecord is one platform group competing in one session on one
// competition day, as extracted from a meet schedule document.
type ScheduleRecord struct {
	// DynamoDB composite key
	PK string `json:"PK,omitempty" dynamodbav:"PK"` // MEET#{meet}
	SK string `json:"SK,omitempty" dynamodbav:"SK"` // sort key per key mode, see SortKey

	ID             string `json:"id" dynamodbav:"id"`
	EventName      string `json:"meet" dynamodbav:"meet"`
	Date           string `json:"date" dynamodbav:"date"` // ISO date (YYYY-MM-DD)
	SessionID      int    `json:"session_id" dynamodbav:"session_id"`
	Platform       string `json:"platform" dynamodbav:"platform"`           // Red|White|Blue
	StartTime      string `json:"start_time" dynamodbav:"start_time"`       // HH:MM:SS (24-hour)
	WeighInTime    string `json:"weigh_in_time" dynamodbav:"weigh_in_time"` // HH:MM:SS (24-hour)
	WeightCategory string `json:"weight_class" dynamodbav:"weight_class"`   // trailing group letter A-E stripped

	CreatedAt time.Time `json:"created_at,omitempty" dynamodbav:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" dynamodbav:"updated_at,omitempty"`
}

// Key renders the uniqueness key for the given mode. Records that render
// the same key describe the same schedule slot and conflict on upsert.
func (r ScheduleRecord) Key(mode string) string {
	if mode == KeyModeDate {
		return fmt.Sprintf("%s|%d|%s|%s", r.Date, r.SessionID, r.Platform, r.WeightCategory)
	}
	return fmt.Sprintf("%s|%d|%s|%s", r.EventName, r.SessionID, r.Platform, r.WeightCategory)
}

// SortKey renders the DynamoDB sort key for the given mode. Sessions are
// zero-padded so items sort in session order within a meet.
func (r ScheduleRecord) SortKey(mode string) string {
	if mode == KeyModeDate {
		return fmt.Sprintf("DATE#%s#SESSION#%03d#PLATFORM#%s#CLASS#%s", r.Date, r.SessionID, r.Platform, r.WeightCategory)
	}
	return fmt.Sprintf("SESSION#%03d#PLATFORM#%s#CLASS#%s", r.SessionID, r.Platform, r.WeightCategory)
}

// IsComplete reports whether every core field is populated. Incomplete
// records are dropped before deduplication and never persisted.
func (r ScheduleRecord) IsComplete() bool {
	return r.EventName != "" &&
		r.Date != "" &&
		r.SessionID > 0 &&
		ValidatePlatform(r.Platform) &&
		r.StartTime != "" &&
		r.WeighInTime != "" &&
		r.WeightCategory != ""
}

// RecordUpdate pairs the stored and freshly extracted versions of a record
// whose tracked fields differ.
type RecordUpdate struct {
	Old     ScheduleRecord `json:"old"`
	New     ScheduleRecord `json:"new"`
	Changes []string       `json:"changes"` // changed field names: date, start_time, weigh_in_time
}

// ReconciliationResult partitions an extracted record set against the
// previously persisted set for the same meet. Keys present only in the old
// set are not reported; the scraper never deletes.
type ReconciliationResult struct {
	KeyMode   string           `json:"key_mode"`
	ToAdd     []ScheduleRecord `json:"to_add"`
	ToUpdate  []RecordUpdate   `json:"to_update"`
	Unchanged []ScheduleRecord `json:"unchanged"`
}

// Counts returns the partition sizes in add, update, unchanged order.
func (r ReconciliationResult) Counts() (int, int, int) {
	return len(r.ToAdd), len(r.ToUpdate), len(r.Unchanged)
}
