package services

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"weightlifting-schedule-scraper/internal/models"
)

// WriteReconciliationReport renders a human-readable diff of a
// reconciliation result. Adds and updates are listed row by row;
// unchanged records only contribute to the summary line.
func WriteReconciliationReport(w io.Writer, meetName string, result models.ReconciliationResult) error {
	added, updated, unchanged := result.Counts()
	fmt.Fprintf(w, "%s (key mode: %s): %d to add, %d to update, %d unchanged\n",
		meetName, result.KeyMode, added, updated, unchanged)

	if added == 0 && updated == 0 {
		return nil
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{}))
	table.Header("Action", "Date", "Session", "Platform", "Class", "Start", "Weigh-In", "Changes")

	for _, record := range result.ToAdd {
		if err := table.Append("add", record.Date, record.SessionID, record.Platform,
			record.WeightCategory, record.StartTime, record.WeighInTime, ""); err != nil {
			return err
		}
	}

	for _, update := range result.ToUpdate {
		record := update.New
		if err := table.Append("update", record.Date, record.SessionID, record.Platform,
			record.WeightCategory, record.StartTime, record.WeighInTime,
			formatChanges(update)); err != nil {
			return err
		}
	}

	return table.Render()
}

// formatChanges renders the old and new values of each changed field.
func formatChanges(update models.RecordUpdate) string {
	parts := make([]string, 0, len(update.Changes))
	for _, field := range update.Changes {
		parts = append(parts, fmt.Sprintf("%s: %s -> %s",
			field, fieldValue(update.Old, field), fieldValue(update.New, field)))
	}
	return strings.Join(parts, ", ")
}

func fieldValue(record models.ScheduleRecord, field string) string {
	switch field {
	case "date":
		return record.Date
	case "start_time":
		return record.StartTime
	case "weigh_in_time":
		return record.WeighInTime
	}
	return ""
}
