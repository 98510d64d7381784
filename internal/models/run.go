package models

import "time"

// Run and meet statuses
const (
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusPartial   = "partial"
)

// Parsing strategies. Auto lets the header detector decide per table.
const (
	StrategyAuto       = "auto"
	StrategyHeaders    = "headers"
	StrategyPositional = "positional"
)

// MeetJob describes one meet schedule to scrape
type MeetJob struct {
	MeetName string `json:"meet_name"`
	URL      string `json:"url,omitempty"`       // schedule document URL
	GridFile string `json:"grid_file,omitempty"` // pre-extracted grid JSON, used instead of URL
	Strategy string `json:"strategy,omitempty"`  // auto|headers|positional, default auto
	KeyMode  string `json:"key_mode,omitempty"`  // event|date, default event
	DryRun   bool   `json:"dry_run,omitempty"`
	CSVFile  string `json:"csv_file,omitempty"` // write extracted records here as CSV
}

// MeetResult captures the outcome of scraping a single meet
type MeetResult struct {
	MeetName    string    `json:"meet_name"`
	URL         string    `json:"url,omitempty"`
	Status      string    `json:"status"` // completed|failed
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Duration    int64     `json:"duration,omitempty"` // milliseconds
	DryRun      bool      `json:"dry_run,omitempty"`

	// Extraction counts
	PagesProcessed    int `json:"pages_processed"`
	TablesParsed      int `json:"tables_parsed"`
	RowsSkipped       int `json:"rows_skipped"`
	RecordsExtracted  int `json:"records_extracted"`
	DuplicatesRemoved int `json:"duplicates_removed"`

	// Reconciliation counts
	RecordsAdded     int `json:"records_added"`
	RecordsUpdated   int `json:"records_updated"`
	RecordsUnchanged int `json:"records_unchanged"`

	ErrorMessage string `json:"error_message,omitempty"`
	ArchiveURL   string `json:"archive_url,omitempty"` // S3 location of the archived document
}

// ScrapeRun aggregates results across all meets in one invocation
type ScrapeRun struct {
	ID          string    `json:"id"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
	Duration    int64     `json:"duration,omitempty"` // total milliseconds
	Status      string    `json:"status"`             // completed|failed|partial

	// Aggregated results
	TotalMeets        int `json:"total_meets"`
	SuccessfulMeets   int `json:"successful_meets"`
	FailedMeets       int `json:"failed_meets"`
	TotalRecords      int `json:"total_records"`
	RecordsAdded      int `json:"records_added"`
	RecordsUpdated    int `json:"records_updated"`
	RecordsUnchanged  int `json:"records_unchanged"`
	DuplicatesRemoved int `json:"duplicates_removed"`

	// Individual meets
	Results []MeetResult `json:"results"`

	// Metadata
	TriggerType    string `json:"trigger_type"` // scheduled|manual
	ScraperVersion string `json:"scraper_version"`
}

// Finalize stamps completion time and rolls the per-meet results up into
// the aggregate counters and overall status.
func (run *ScrapeRun) Finalize() {
	run.CompletedAt = time.Now()
	run.Duration = run.CompletedAt.Sub(run.StartedAt).Milliseconds()

	run.TotalMeets = len(run.Results)
	run.SuccessfulMeets = 0
	run.FailedMeets = 0
	run.TotalRecords = 0
	run.RecordsAdded = 0
	run.RecordsUpdated = 0
	run.RecordsUnchanged = 0
	run.DuplicatesRemoved = 0

	for _, result := range run.Results {
		if result.Status == RunStatusCompleted {
			run.SuccessfulMeets++
		} else {
			run.FailedMeets++
		}
		run.TotalRecords += result.RecordsExtracted
		run.RecordsAdded += result.RecordsAdded
		run.RecordsUpdated += result.RecordsUpdated
		run.RecordsUnchanged += result.RecordsUnchanged
		run.DuplicatesRemoved += result.DuplicatesRemoved
	}

	switch {
	case run.FailedMeets == 0:
		run.Status = RunStatusCompleted
	case run.SuccessfulMeets == 0:
		run.Status = RunStatusFailed
	default:
		run.Status = RunStatusPartial
	}
}
