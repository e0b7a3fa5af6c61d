package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Recurring task tracker",
	Long:  "Cadence tracks recurring tasks and computes when each one is next due.",
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	// A missing .env file is fine; the environment wins either way.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() {
	level, err := zerolog.ParseLevel(os.Getenv("CADENCE_LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if os.Getenv("CADENCE_LOG_FORMAT") == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}
