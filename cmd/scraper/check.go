package main

import (
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/spf13/cobra"

	"weightlifting-schedule-scraper/internal/services"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify DynamoDB and S3 connectivity",
	Long: `Check verifies that the schedule table and the archive bucket are
reachable with the current credentials and configuration.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	failed := false

	store := services.NewScheduleStore(dynamodb.NewFromConfig(cfg), scheduleTable())
	if err := store.CheckConnectivity(ctx); err != nil {
		fmt.Printf("DynamoDB (%s): FAILED: %v\n", scheduleTable(), err)
		failed = true
	} else {
		fmt.Printf("DynamoDB (%s): OK\n", scheduleTable())
	}

	archive, err := services.NewArchiveClient()
	if err != nil {
		fmt.Printf("S3: FAILED: %v\n", err)
		failed = true
	} else if err := archive.CheckConnectivity(ctx); err != nil {
		fmt.Printf("S3 (%s): FAILED: %v\n", archive.BucketName(), err)
		failed = true
	} else {
		fmt.Printf("S3 (%s): OK\n", archive.BucketName())
	}

	if failed {
		return fmt.Errorf("connectivity check failed")
	}
	return nil
}
