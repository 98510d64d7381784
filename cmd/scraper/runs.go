package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"weightlifting-schedule-scraper/internal/services"
)

var runsID string

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List archived scrape runs",
	Long: `Runs lists the run snapshots archived in S3. With --id the matching
snapshot is downloaded and its per-meet results are shown.`,
	RunE: runRuns,
}

func init() {
	rootCmd.AddCommand(runsCmd)

	runsCmd.Flags().StringVar(&runsID, "id", "", "show the run with this id")
}

func runRuns(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	archive, err := services.NewArchiveClient()
	if err != nil {
		return fmt.Errorf("failed to initialize archive client: %w", err)
	}

	files, err := archive.ListFiles(ctx, "runs/")
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("no archived runs")
		return nil
	}

	if runsID != "" {
		return showRun(ctx, archive, files, runsID)
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{}))
	table.Header("Key", "Size", "Last Modified")
	for _, file := range files {
		if err := table.Append(file.Key, file.Size, file.LastModified.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return table.Render()
}

func showRun(ctx context.Context, archive *services.ArchiveClient, files []services.S3FileInfo, id string) error {
	var key string
	for _, file := range files {
		if strings.Contains(file.Key, id) {
			key = file.Key
			break
		}
	}
	if key == "" {
		return fmt.Errorf("no archived run matching %q", id)
	}

	run, err := archive.DownloadRunSnapshot(ctx, key)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %s, %d/%d meets succeeded, %d records (%d added, %d updated, %d unchanged)\n",
		run.ID, run.Status, run.SuccessfulMeets, run.TotalMeets,
		run.TotalRecords, run.RecordsAdded, run.RecordsUpdated, run.RecordsUnchanged)

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{}))
	table.Header("Meet", "Status", "Records", "Added", "Updated", "Unchanged", "Error")
	for _, result := range run.Results {
		if err := table.Append(result.MeetName, result.Status, result.RecordsExtracted,
			result.RecordsAdded, result.RecordsUpdated, result.RecordsUnchanged,
			result.ErrorMessage); err != nil {
			return err
		}
	}
	return table.Render()
}
