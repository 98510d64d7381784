package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"weightlifting-schedule-scraper/internal/logging"
	"weightlifting-schedule-scraper/internal/models"
	"weightlifting-schedule-scraper/internal/services"
)

const scraperVersion = "1.0.0"

// maxConcurrentMeets bounds parallel fetch and extraction calls so the
// tabula sidecar is not overwhelmed. Parsing within one meet stays
// strictly sequential.
const maxConcurrentMeets = 3

// LambdaEvent represents the EventBridge or manual trigger event
type LambdaEvent struct {
	Source      string           `json:"source"`
	DetailType  string           `json:"detail-type"`
	TriggerType string           `json:"trigger-type,omitempty"` // manual, scheduled
	Meets       []models.MeetJob `json:"meets,omitempty"`        // overrides MEETS_CONFIG
	DryRun      bool             `json:"dry_run,omitempty"`      // forces dry run on every meet
}

// LambdaResponse represents the function response
type LambdaResponse struct {
	Success        bool              `json:"success"`
	Message        string            `json:"message"`
	RunID          string            `json:"run_id,omitempty"`
	TotalRecords   int               `json:"total_records"`
	ProcessingTime int64             `json:"processing_time_ms"`
	Run            *models.ScrapeRun `json:"run,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
}

// ScheduleScraper wires the services needed for one invocation
type ScheduleScraper struct {
	fetcher     *services.DocumentFetcher
	tables      services.TableSource
	parser      *services.ScheduleParser
	store       *services.ScheduleStore
	archive     *services.ArchiveClient
	assumedYear int
}

// newScheduleScraper builds the service stack from the environment.
func newScheduleScraper(ctx context.Context) (*ScheduleScraper, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	tableName := os.Getenv("SCHEDULE_TABLE")
	if tableName == "" {
		tableName = "weightlifting-schedule"
	}

	archive, err := services.NewArchiveClient()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize archive client: %w", err)
	}

	assumedYear := 0
	if v := os.Getenv("ASSUMED_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASSUMED_YEAR %q: %w", v, err)
		}
		assumedYear = year
	}

	return &ScheduleScraper{
		fetcher:     services.NewDocumentFetcher(),
		tables:      services.NewTabulaClient(os.Getenv("TABULA_SERVICE_URL")),
		parser:      services.NewScheduleParser(),
		store:       services.NewScheduleStore(dynamodb.NewFromConfig(cfg), tableName),
		archive:     archive,
		assumedYear: assumedYear,
	}, nil
}

// loadMeets resolves the meet list for this invocation. Explicit meets in
// the event win; otherwise MEETS_CONFIG supplies the standing list.
func loadMeets(event LambdaEvent) ([]models.MeetJob, error) {
	if len(event.Meets) > 0 {
		return event.Meets, nil
	}

	raw := os.Getenv("MEETS_CONFIG")
	if raw == "" {
		return nil, fmt.Errorf("no meets in event and MEETS_CONFIG is not set")
	}

	var meets []models.MeetJob
	if err := json.Unmarshal([]byte(raw), &meets); err != nil {
		return nil, fmt.Errorf("failed to parse MEETS_CONFIG: %w", err)
	}
	if len(meets) == 0 {
		return nil, fmt.Errorf("MEETS_CONFIG contains no meets")
	}
	return meets, nil
}

// HandleLambdaEvent is the main Lambda handler function
func HandleLambdaEvent(ctx context.Context, event LambdaEvent) (LambdaResponse, error) {
	start := time.Now()

	scraper, err := newScheduleScraper(ctx)
	if err != nil {
		logging.Error().Err(err).Msg("failed to initialize scraper")
		return LambdaResponse{
			Success:        false,
			Message:        fmt.Sprintf("Failed to initialize scraper: %v", err),
			ProcessingTime: time.Since(start).Milliseconds(),
		}, err
	}

	meets, err := loadMeets(event)
	if err != nil {
		logging.Error().Err(err).Msg("failed to resolve meet list")
		return LambdaResponse{
			Success:        false,
			Message:        fmt.Sprintf("Failed to resolve meet list: %v", err),
			ProcessingTime: time.Since(start).Milliseconds(),
		}, err
	}

	triggerType := event.TriggerType
	if triggerType == "" {
		if event.Source == "aws.events" {
			triggerType = "scheduled"
		} else {
			triggerType = "manual"
		}
	}

	run := &models.ScrapeRun{
		ID:             models.NewRunID(),
		StartedAt:      start.UTC(),
		TriggerType:    triggerType,
		ScraperVersion: scraperVersion,
	}

	logging.Info().
		Str("run_id", run.ID).
		Int("meets", len(meets)).
		Str("trigger", triggerType).
		Bool("dry_run", event.DryRun).
		Msg("scrape run started")

	// Meets run concurrently; each goroutine owns its result slot and a
	// private report buffer so dry-run tables do not interleave.
	results := make([]models.MeetResult, len(meets))
	reports := make([]bytes.Buffer, len(meets))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, maxConcurrentMeets)

	for i, meet := range meets {
		wg.Add(1)
		go func(index int, job models.MeetJob) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if event.DryRun {
				job.DryRun = true
			}

			pipeline := &services.ScrapePipeline{
				Fetcher:     scraper.fetcher,
				Tables:      scraper.tables,
				Parser:      scraper.parser,
				Store:       scraper.store,
				Archive:     scraper.archive,
				AssumedYear: scraper.assumedYear,
				ReportOut:   &reports[index],
			}

			// Failures are captured in the result and rolled up below.
			result, _ := pipeline.Run(ctx, job, run.ID)
			results[index] = result
		}(i, meet)
	}
	wg.Wait()

	run.Results = results
	run.Finalize()

	for i := range reports {
		if reports[i].Len() > 0 {
			fmt.Print(reports[i].String())
		}
	}

	if _, err := scraper.archive.UploadRunSnapshot(ctx, run); err != nil {
		logging.Warn().Err(err).Str("run_id", run.ID).Msg("failed to upload run snapshot")
	}

	var errorMessages []string
	for _, result := range run.Results {
		if result.Status == models.RunStatusFailed && result.ErrorMessage != "" {
			errorMessages = append(errorMessages, fmt.Sprintf("%s: %s", result.MeetName, result.ErrorMessage))
		}
	}

	response := LambdaResponse{
		Success:        run.SuccessfulMeets > 0,
		Message:        fmt.Sprintf("Scraped %d records from %d/%d meets", run.TotalRecords, run.SuccessfulMeets, run.TotalMeets),
		RunID:          run.ID,
		TotalRecords:   run.TotalRecords,
		ProcessingTime: time.Since(start).Milliseconds(),
		Run:            run,
		Errors:         errorMessages,
	}

	logging.Info().
		Str("run_id", run.ID).
		Str("status", run.Status).
		Int64("duration_ms", response.ProcessingTime).
		Msg("scrape run finished")

	return response, nil
}

// main is the entry point for the Lambda function
func main() {
	lambda.Start(HandleLambdaEvent)
}
