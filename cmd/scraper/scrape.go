package main

import (
	"fmt"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weightlifting-schedule-scraper/internal/models"
	"weightlifting-schedule-scraper/internal/services"
)

var (
	scrapeMeetName  string
	scrapeGridFile  string
	scrapeStrategy  string
	scrapeKeyMode   string
	scrapeCSVFile   string
	scrapeYear      int
	scrapeDryRun    bool
	scrapeNoStore   bool
	scrapeNoArchive bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Scrape one meet schedule document",
	Long: `Scrape fetches a meet schedule PDF, extracts its session records,
and reconciles them against the schedule table.

With --grid-file the PDF fetch and table extraction are skipped and the
pre-extracted grid JSON is parsed instead. With --dry-run the diff is
printed and nothing is written.`,
	Example: `  scraper scrape https://usaweightlifting.example/nationals-schedule.pdf --meet "2025 Nationals"
  scraper scrape --grid-file grids/nationals.json --meet "2025 Nationals" --dry-run
  scraper scrape https://example.com/schedule.pdf --meet "AO Finals" --key-mode date --csv out.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&scrapeMeetName, "meet", "", "meet name used for record identity (required)")
	scrapeCmd.Flags().StringVar(&scrapeGridFile, "grid-file", "", "parse a pre-extracted grid JSON instead of fetching the document")
	scrapeCmd.Flags().StringVar(&scrapeStrategy, "strategy", models.StrategyAuto, "parsing strategy (auto|headers|positional)")
	scrapeCmd.Flags().StringVar(&scrapeKeyMode, "key-mode", models.KeyModeEvent, "record identity mode (event|date)")
	scrapeCmd.Flags().StringVar(&scrapeCSVFile, "csv", "", "write extracted records to this CSV file")
	scrapeCmd.Flags().IntVar(&scrapeYear, "year", 0, "assumed year for dates without one (default ASSUMED_YEAR env)")
	scrapeCmd.Flags().BoolVar(&scrapeDryRun, "dry-run", false, "report changes without writing to DynamoDB")
	scrapeCmd.Flags().BoolVar(&scrapeNoStore, "no-store", false, "skip DynamoDB, extraction only")
	scrapeCmd.Flags().BoolVar(&scrapeNoArchive, "no-archive", false, "skip S3 archival")

	if err := scrapeCmd.MarkFlagRequired("meet"); err != nil {
		panic(err)
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	job := models.MeetJob{
		MeetName: scrapeMeetName,
		GridFile: scrapeGridFile,
		Strategy: scrapeStrategy,
		KeyMode:  scrapeKeyMode,
		CSVFile:  scrapeCSVFile,
		DryRun:   scrapeDryRun,
	}
	if len(args) > 0 {
		job.URL = args[0]
	}
	if job.URL == "" && job.GridFile == "" {
		return fmt.Errorf("either a document URL argument or --grid-file is required")
	}

	assumedYear := scrapeYear
	if assumedYear == 0 {
		assumedYear = viper.GetInt("assumed.year")
	}

	pipeline := &services.ScrapePipeline{
		Fetcher:     services.NewDocumentFetcher(),
		Parser:      services.NewScheduleParser(),
		AssumedYear: assumedYear,
		ReportOut:   os.Stdout,
	}

	if serviceURL := viper.GetString("tabula.service.url"); serviceURL != "" {
		pipeline.Tables = services.NewTabulaClient(serviceURL)
	}

	if !scrapeNoStore {
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("failed to load AWS config: %w", err)
		}
		pipeline.Store = services.NewScheduleStore(dynamodb.NewFromConfig(cfg), scheduleTable())
	}

	if !scrapeNoArchive {
		archive, err := services.NewArchiveClient()
		if err != nil {
			return fmt.Errorf("failed to initialize archive client: %w", err)
		}
		pipeline.Archive = archive
	}

	result, err := pipeline.Run(ctx, job, models.NewRunID())
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d records extracted (%d added, %d updated, %d unchanged, %d duplicates removed)\n",
		result.MeetName, result.RecordsExtracted,
		result.RecordsAdded, result.RecordsUpdated, result.RecordsUnchanged,
		result.DuplicatesRemoved)
	if result.ArchiveURL != "" {
		fmt.Printf("archived document: %s\n", result.ArchiveURL)
	}
	return nil
}
