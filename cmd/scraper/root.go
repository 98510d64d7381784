package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"weightlifting-schedule-scraper/internal/logging"
)

var (
	configFile string
	logLevel   string
	logFormat  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Weightlifting meet schedule scraper",
	Long: `Scraper extracts session schedules from weightlifting meet PDFs,
reconciles them against the schedule table, and archives every document
it parses.

Configuration comes from flags, environment variables, .env files, and
an optional .scraper.yaml config file, in that order of precedence.`,
}

// Execute runs the root command with a signal-aware context.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is .scraper.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console|json)")
}

// initConfig reads in config files and ENV variables if set.
func initConfig() {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".scraper")
	}

	// Load .env files before viper env binding
	loadEnvFiles()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	if err := viper.ReadInConfig(); err == nil {
		logging.Debug().Str("file", viper.ConfigFileUsed()).Msg("loaded config file")
	}

	level := logLevel
	if level == "" {
		level = viper.GetString("log.level")
	}
	format := logFormat
	if format == "" {
		format = viper.GetString("log.format")
	}
	logging.Configure(level, format)
}

// loadEnvFiles loads environment variables from .env files. Existing
// environment variables are never overridden.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		if err := godotenv.Load(envFile); err == nil {
			logging.Debug().Str("file", envFile).Msg("loaded env file")
		}
	}
}

// scheduleTable returns the configured DynamoDB table name.
func scheduleTable() string {
	if name := viper.GetString("schedule.table"); name != "" {
		return name
	}
	return "weightlifting-schedule"
}
