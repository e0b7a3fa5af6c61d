package commands

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gosuda/cadence/internal/config"
	"github.com/gosuda/cadence/internal/store/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
			return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
		}

		store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(ctx); err != nil {
			return err
		}

		log.Info().Msg("schema applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
