package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-goal-tracker/internal/config"
	"github.com/ndewijer/investment-goal-tracker/internal/database"
	"github.com/ndewijer/investment-goal-tracker/internal/logging"
)

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long:  "Apply pending database migrations to DB_PATH, or to --db when given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dbPath == "" {
				dbPath = cfg.Database.Path
			}
			logger := logging.New(cfg.Log.Level, "goalplan")

			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			logger.Info("database migrated", "path", dbPath, "version", v)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
			return err
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Database path (default DB_PATH)")
	return cmd
}
