package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"weightlifting-schedule-scraper/internal/models"
)

// csvHeader is the column order of exported schedule CSVs.
var csvHeader = []string{"id", "date", "session_id", "start_time", "weigh_in_time", "platform", "weight_class", "meet"}

// WriteRecordsCSV writes schedule records as CSV, header first, one row
// per record in the order given.
func WriteRecordsCSV(w io.Writer, records []models.ScheduleRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.ID,
			record.Date,
			strconv.Itoa(record.SessionID),
			record.StartTime,
			record.WeighInTime,
			record.Platform,
			record.WeightCategory,
			record.EventName,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportRecordsCSV writes schedule records to a CSV file at path.
func ExportRecordsCSV(path string, records []models.ScheduleRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file %s: %w", path, err)
	}

	if err := WriteRecordsCSV(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file %s: %w", path, err)
	}
	return nil
}
