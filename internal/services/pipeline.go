package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"weightlifting-schedule-scraper/internal/logging"
	"weightlifting-schedule-scraper/internal/models"
)

// ErrNoRecords marks a document that parsed cleanly but yielded no
// schedule records, which almost always means the layout changed. The
// meet fails so the run summary surfaces it instead of reporting an
// empty success.
var ErrNoRecords = errors.New("no schedule records extracted from document")

// ScrapePipeline runs one meet end to end: fetch the document, extract
// page grids, parse records, reconcile against storage, then apply or
// report the changes and archive the artifacts.
//
// Store and Archive are optional. A nil Store turns the run into a pure
// extraction; a nil Archive skips uploads. Archive failures are logged
// and never fail the meet.
type ScrapePipeline struct {
	Fetcher     *DocumentFetcher
	Tables      TableSource
	Parser      *ScheduleParser
	Store       *ScheduleStore
	Archive     *ArchiveClient
	AssumedYear int
	ReportOut   io.Writer // dry-run report destination, stdout when nil
}

// Run scrapes one meet. The returned result is populated even on
// failure; a non-nil error means the meet did not complete.
func (p *ScrapePipeline) Run(ctx context.Context, job models.MeetJob, runID string) (models.MeetResult, error) {
	result := models.MeetResult{
		MeetName:  job.MeetName,
		URL:       job.URL,
		Status:    models.RunStatusCompleted,
		StartedAt: time.Now().UTC(),
		DryRun:    job.DryRun,
	}

	err := p.run(ctx, job, runID, &result)
	result.CompletedAt = time.Now().UTC()
	result.Duration = result.CompletedAt.Sub(result.StartedAt).Milliseconds()
	if err != nil {
		result.Status = models.RunStatusFailed
		result.ErrorMessage = err.Error()
		logging.Error().Err(err).Str("meet", job.MeetName).Msg("meet scrape failed")
		return result, err
	}

	logging.Info().
		Str("meet", job.MeetName).
		Int("records", result.RecordsExtracted).
		Int("added", result.RecordsAdded).
		Int("updated", result.RecordsUpdated).
		Int("unchanged", result.RecordsUnchanged).
		Bool("dry_run", job.DryRun).
		Msg("meet scrape completed")
	return result, nil
}

func (p *ScrapePipeline) run(ctx context.Context, job models.MeetJob, runID string, result *models.MeetResult) error {
	if job.MeetName == "" {
		return fmt.Errorf("meet name is required")
	}

	keyMode := job.KeyMode
	if keyMode == "" {
		keyMode = models.KeyModeEvent
	}
	if !models.ValidateKeyMode(keyMode) {
		return fmt.Errorf("invalid key mode %q", job.KeyMode)
	}

	strategy := job.Strategy
	if strategy == "" {
		strategy = models.StrategyAuto
	}
	if !models.ValidateStrategy(strategy) {
		return fmt.Errorf("invalid strategy %q", job.Strategy)
	}

	source := p.Tables
	var pdf []byte
	if job.GridFile != "" {
		source = GridFileSource{Path: job.GridFile}
	} else {
		if job.URL == "" {
			return fmt.Errorf("either url or grid file is required")
		}
		if p.Fetcher == nil {
			return fmt.Errorf("no document fetcher configured")
		}

		data, err := p.Fetcher.Fetch(ctx, job.URL)
		if err != nil {
			return fmt.Errorf("failed to fetch document: %w", err)
		}
		pdf = data

		if p.Archive != nil {
			upload, err := p.Archive.UploadDocument(ctx, pdf, job.MeetName, runID)
			if err != nil {
				logging.Warn().Err(err).Str("meet", job.MeetName).Msg("document archive failed")
			} else {
				result.ArchiveURL = upload.PublicURL
			}
		}
	}
	if source == nil {
		return fmt.Errorf("no table source configured")
	}

	pages, err := source.ExtractTables(ctx, pdf)
	if err != nil {
		return fmt.Errorf("failed to extract tables: %w", err)
	}

	records, stats := p.Parser.ParseDocument(pages, ParseOptions{
		EventName:   job.MeetName,
		Strategy:    strategy,
		AssumedYear: p.AssumedYear,
	})
	result.PagesProcessed = stats.Pages
	result.TablesParsed = stats.TablesParsed
	result.RowsSkipped = stats.RowsSkipped + stats.IncompleteDropped
	result.RecordsExtracted = stats.Records

	AssignRecordIDs(records, keyMode)
	records, removed := Deduplicate(records, keyMode)
	result.DuplicatesRemoved = removed

	if len(records) == 0 {
		return ErrNoRecords
	}

	if job.CSVFile != "" {
		if err := ExportRecordsCSV(job.CSVFile, records); err != nil {
			return err
		}
	}

	var existing []models.ScheduleRecord
	if p.Store != nil {
		existing, err = p.Store.QueryByMeet(ctx, job.MeetName)
		if err != nil {
			return fmt.Errorf("failed to load stored records: %w", err)
		}
	}

	recon := Reconcile(records, existing, keyMode)
	result.RecordsAdded, result.RecordsUpdated, result.RecordsUnchanged = recon.Counts()

	if job.DryRun {
		out := p.ReportOut
		if out == nil {
			out = os.Stdout
		}
		if err := WriteReconciliationReport(out, job.MeetName, recon); err != nil {
			return fmt.Errorf("failed to write reconciliation report: %w", err)
		}
	} else if p.Store != nil {
		if err := p.Store.ApplyChanges(ctx, recon); err != nil {
			return fmt.Errorf("failed to apply changes: %w", err)
		}
	}

	if p.Archive != nil {
		if _, err := p.Archive.UploadRecords(ctx, records, job.MeetName, runID); err != nil {
			logging.Warn().Err(err).Str("meet", job.MeetName).Msg("records archive failed")
		}
	}

	return nil
}
