package services

import (
	"weightlifting-schedule-scraper/internal/logging"
	"weightlifting-schedule-scraper/internal/models"
)

// ParseContext is the carry-over state threaded across rows, tables, and
// pages within one document parse: the current competition date, the
// running session id, and the last raw start-time cell seen per platform.
// A fresh context must be created per document; reusing one across
// documents leaks stale date and session state between meets.
type ParseContext struct {
	CurrentDate             string
	CurrentSession          int
	LastStartTimeByPlatform map[string]string
}

// NewParseContext creates an empty context for one document parse.
func NewParseContext() *ParseContext {
	return &ParseContext{
		LastStartTimeByPlatform: make(map[string]string),
	}
}

// ResetStartTimes clears the per-platform start-time trackers. Explicit
// session numbers call this so boundary inference does not fire on the
// first rows after an explicit session change.
func (ctx *ParseContext) ResetStartTimes() {
	for platform := range ctx.LastStartTimeByPlatform {
		delete(ctx.LastStartTimeByPlatform, platform)
	}
}

// ParseOptions configure one document parse.
type ParseOptions struct {
	EventName   string
	Strategy    string // auto|headers|positional; auto decides per table
	AssumedYear int    // year for abbreviated dates, DefaultAssumedYear when zero
}

// ParseStats counts what one document parse saw and dropped. Malformed
// rows are skipped silently and only show up here.
type ParseStats struct {
	Pages             int
	TablesParsed      int
	SectionsDetected  int
	RowsSkipped       int
	IncompleteDropped int
	Records           int
}

// ScheduleParser turns decoded page grids into validated ScheduleRecords.
// Pages, tables, and rows are processed strictly in document order; the
// carry-over context makes ordering part of correctness.
type ScheduleParser struct{}

// NewScheduleParser creates a new schedule parser
func NewScheduleParser() *ScheduleParser {
	return &ScheduleParser{}
}

// ParseDocument extracts schedule records from the pages of one document.
// A zero-record result is returned as an empty slice, not an error; the
// caller decides whether an empty extraction fails the run.
func (p *ScheduleParser) ParseDocument(pages []models.Page, opts ParseOptions) ([]models.ScheduleRecord, ParseStats) {
	ctx := NewParseContext()
	stats := ParseStats{Pages: len(pages)}
	var records []models.ScheduleRecord

	for _, page := range pages {
		for tableIdx, table := range page.Tables {
			entries, skipped := p.parseTable(table, ctx, opts, &stats)
			stats.RowsSkipped += skipped

			kept := 0
			for _, entry := range entries {
				record, ok := p.buildRecord(entry, opts.EventName)
				if !ok {
					stats.IncompleteDropped++
					continue
				}
				records = append(records, record)
				kept++
			}

			logging.Debug().
				Int("page", page.Number).
				Int("table", tableIdx).
				Int("records", kept).
				Int("rows_skipped", skipped).
				Msg("parsed table")
		}
	}

	stats.Records = len(records)
	logging.Info().
		Str("meet", opts.EventName).
		Int("pages", stats.Pages).
		Int("records", stats.Records).
		Int("rows_skipped", stats.RowsSkipped).
		Int("incomplete_dropped", stats.IncompleteDropped).
		Msg("document parsed")
	return records, stats
}

// parseTable routes one table to a strategy. Auto mode asks the section
// detector first and falls back to positional parsing for headerless
// tables; a forced strategy skips the probe.
func (p *ScheduleParser) parseTable(table models.Table, ctx *ParseContext, opts ParseOptions, stats *ParseStats) ([]RawEntry, int) {
	if len(table.Rows) == 0 {
		return nil, 0
	}

	if opts.Strategy == models.StrategyPositional {
		stats.TablesParsed++
		return parsePositionalTable(table, ctx, opts.AssumedYear)
	}

	sections := DetectSections(table)
	if len(sections) == 0 {
		if opts.Strategy == models.StrategyHeaders {
			logging.Debug().Msg("no header sections in table, skipping")
			return nil, 0
		}
		stats.TablesParsed++
		return parsePositionalTable(table, ctx, opts.AssumedYear)
	}

	stats.TablesParsed++
	stats.SectionsDetected += len(sections)

	var entries []RawEntry
	skipped := 0
	for _, section := range sections {
		sectionEntries, sectionSkipped := parseHeaderSection(table.Rows[section.Start:section.End], section, ctx, opts.AssumedYear)
		entries = append(entries, sectionEntries...)
		skipped += sectionSkipped
	}
	return entries, skipped
}

// buildRecord maps a raw entry onto the canonical record schema. Entries
// missing any core field are dropped here, never persisted with holes.
func (p *ScheduleParser) buildRecord(entry RawEntry, eventName string) (models.ScheduleRecord, bool) {
	record := models.ScheduleRecord{
		EventName:      eventName,
		Date:           entry.Date,
		SessionID:      entry.SessionID,
		Platform:       entry.Platform,
		StartTime:      entry.StartTime,
		WeighInTime:    entry.WeighInTime,
		WeightCategory: entry.WeightCategory,
	}
	if !record.IsComplete() {
		return models.ScheduleRecord{}, false
	}
	return record, true
}
