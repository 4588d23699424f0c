package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migrations (embedded per driver unless --dir is given)",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "", "sql migrations directory on disk")
}

func runMigration(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	cfg, err := bootstrap()
	if err != nil {
		log.Fatal(err)
	}

	gdb, err := openDB(cfg.Database)
	if err != nil {
		log.Fatalf("goose: failed to open DB: %v\n", err)
	}
	defer closeDB(gdb)

	command := "up"
	if migrateRollback {
		command = "down"
	}

	return runMigrations(ctx, gdb, cfg.Database.Driver, migrateDir, command)
}
