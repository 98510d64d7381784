package services

import (
	"sort"

	"weightlifting-schedule-scraper/internal/models"
)

// trackedFields are the mutable fields compared during reconciliation.
// Identity fields never appear here; a change to an identity field is a
// different record, not an update.
var trackedFields = []string{"date", "start_time", "weigh_in_time"}

// AssignRecordIDs stamps each record with the deterministic id derived
// from its identity key, so re-extracting the same document yields the
// same ids.
func AssignRecordIDs(records []models.ScheduleRecord, keyMode string) {
	for i := range records {
		records[i].ID = models.GenerateRecordID(records[i].Key(keyMode))
	}
}

// Deduplicate collapses records sharing an identity key, keeping the last
// occurrence in document order. Later rows win because corrected reprints
// appear after the rows they supersede. Returns the surviving records in
// first-seen key order and the number of duplicates removed.
func Deduplicate(records []models.ScheduleRecord, keyMode string) ([]models.ScheduleRecord, int) {
	indexByKey := make(map[string]int)
	var result []models.ScheduleRecord
	removed := 0

	for _, record := range records {
		key := record.Key(keyMode)
		if idx, seen := indexByKey[key]; seen {
			result[idx] = record
			removed++
			continue
		}
		indexByKey[key] = len(result)
		result = append(result, record)
	}
	return result, removed
}

// trackedFieldChanges lists which tracked fields differ between the
// stored and freshly extracted versions of a record.
func trackedFieldChanges(old, new models.ScheduleRecord) []string {
	var changes []string
	for _, field := range trackedFields {
		switch field {
		case "date":
			if old.Date != new.Date {
				changes = append(changes, field)
			}
		case "start_time":
			if old.StartTime != new.StartTime {
				changes = append(changes, field)
			}
		case "weigh_in_time":
			if old.WeighInTime != new.WeighInTime {
				changes = append(changes, field)
			}
		}
	}
	return changes
}

// Reconcile partitions freshly extracted records against the stored set
// under the given key mode. Records present only in storage are left
// untouched and unreported; the scraper never deletes, since a session
// missing from one PDF revision usually reappears in the next.
func Reconcile(fresh, existing []models.ScheduleRecord, keyMode string) models.ReconciliationResult {
	existingByKey := make(map[string]models.ScheduleRecord, len(existing))
	for _, record := range existing {
		existingByKey[record.Key(keyMode)] = record
	}

	sorted := make([]models.ScheduleRecord, len(fresh))
	copy(sorted, fresh)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key(keyMode) < sorted[j].Key(keyMode)
	})

	result := models.ReconciliationResult{KeyMode: keyMode}
	for _, record := range sorted {
		stored, found := existingByKey[record.Key(keyMode)]
		if !found {
			result.ToAdd = append(result.ToAdd, record)
			continue
		}

		changes := trackedFieldChanges(stored, record)
		if len(changes) == 0 {
			result.Unchanged = append(result.Unchanged, record)
			continue
		}
		result.ToUpdate = append(result.ToUpdate, models.RecordUpdate{
			Old:     stored,
			New:     record,
			Changes: changes,
		})
	}
	return result
}
