package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	lambdaclient "github.com/aws/aws-sdk-go-v2/service/lambda"
	lambdatypes "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weightlifting-schedule-scraper/internal/models"
)

var (
	triggerFunction  string
	triggerMeetsFile string
	triggerDryRun    bool
	triggerSync      bool
)

var triggerCmd = &cobra.Command{
	Use:   "trigger",
	Short: "Invoke the deployed scraper Lambda",
	Long: `Trigger invokes the deployed scraper Lambda function. Without
--meets-file the Lambda scrapes its standing MEETS_CONFIG list.

By default the invocation is asynchronous; --sync waits for the run and
prints the response payload.`,
	RunE: runTrigger,
}

func init() {
	rootCmd.AddCommand(triggerCmd)

	triggerCmd.Flags().StringVar(&triggerFunction, "function", "", "Lambda function name (default SCRAPER_FUNCTION_NAME env)")
	triggerCmd.Flags().StringVar(&triggerMeetsFile, "meets-file", "", "JSON file with the meet jobs to scrape")
	triggerCmd.Flags().BoolVar(&triggerDryRun, "dry-run", false, "ask the Lambda to run without writing")
	triggerCmd.Flags().BoolVar(&triggerSync, "sync", false, "invoke synchronously and print the response")
}

func runTrigger(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	functionName := triggerFunction
	if functionName == "" {
		functionName = viper.GetString("scraper.function.name")
	}
	if functionName == "" {
		return fmt.Errorf("no function name: set --function or SCRAPER_FUNCTION_NAME")
	}

	var meets []models.MeetJob
	if triggerMeetsFile != "" {
		data, err := os.ReadFile(triggerMeetsFile)
		if err != nil {
			return fmt.Errorf("failed to read meets file: %w", err)
		}
		if err := json.Unmarshal(data, &meets); err != nil {
			return fmt.Errorf("failed to parse meets file: %w", err)
		}
	}

	payload, err := json.Marshal(struct {
		TriggerType string           `json:"trigger-type"`
		Meets       []models.MeetJob `json:"meets,omitempty"`
		DryRun      bool             `json:"dry_run,omitempty"`
	}{
		TriggerType: "manual",
		Meets:       meets,
		DryRun:      triggerDryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal trigger payload: %w", err)
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := lambdaclient.NewFromConfig(cfg)

	invocationType := lambdatypes.InvocationTypeEvent
	if triggerSync {
		invocationType = lambdatypes.InvocationTypeRequestResponse
	}

	out, err := client.Invoke(ctx, &lambdaclient.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: invocationType,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("failed to invoke %s: %w", functionName, err)
	}
	if out.FunctionError != nil {
		return fmt.Errorf("scraper Lambda reported an error: %s", string(out.Payload))
	}

	if triggerSync {
		fmt.Println(string(out.Payload))
	} else {
		fmt.Printf("triggered %s asynchronously\n", functionName)
	}
	return nil
}
