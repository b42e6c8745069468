package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"datatrail/internal/config"
	"datatrail/internal/database"
	"datatrail/internal/database/migration"
	dbpostgres "datatrail/internal/database/postgres"
	"datatrail/internal/database/seeder"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "datatrail",
		Short:         "Audit reporting gaps and trace lineage of data products",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newAuditCmd(), newHighlightCmd())
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()
			r := migration.Runner{Dir: cfg.MigrationsDir, Logger: toolLogger()}
			n, err := r.Run(ctx, db.SQLDB())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture of products, dependencies and observations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			r := seeder.Runner{Seeders: seeder.Defaults(file), Logger: toolLogger()}
			if err := r.Run(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed complete")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", seeder.DefaultFixturePath, "fixture file")
	return cmd
}

func connect(parent context.Context) (config.Config, database.DB, error) {
	cfg, err := config.LoadTool()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func toolLogger() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}
