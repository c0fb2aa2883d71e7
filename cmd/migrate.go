package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/podcast-gateway/internal/database"
	"github.com/killallgit/podcast-gateway/internal/ratelimit"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage the SQLite schema used by the sql rate limit store.

Only needed when rate_limiting.store is "sql". The database location is
taken from database.path.

Available subcommands:
  up      - Create or update the rate limit table
  status  - Show whether the rate limit table exists`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Create or update the rate limit table",
	Long: `Apply the rate limit schema to the configured database.

The database file and its directory are created when missing.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of the rate limit schema.

This command shows whether the database is reachable, whether the
rate limit table exists, and how many windows it holds.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().Bool("dry-run", false, "show what would be done without making changes")
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()
	path := appConfig.Database.Path

	if dryRun {
		fmt.Fprintf(out, "Dry run mode - would migrate %s in %s\n", ratelimit.WindowRecord{}.TableName(), path)
		return nil
	}

	db, err := database.Initialize(path, appConfig.Database.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.AutoMigrate(&ratelimit.WindowRecord{}); err != nil {
		return err
	}

	fmt.Fprintf(out, "Migrated %s in %s\n", ratelimit.WindowRecord{}.TableName(), path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := appConfig.Database.Path

	db, err := database.Initialize(path, appConfig.Database.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.HealthCheck(); err != nil {
		return err
	}

	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintf(out, "Database:     %s\n", path)

	table := ratelimit.WindowRecord{}.TableName()
	if !db.HasTable(&ratelimit.WindowRecord{}) {
		fmt.Fprintf(out, "%s: pending\n", table)
		return nil
	}

	var windows int64
	if err := db.Model(&ratelimit.WindowRecord{}).Count(&windows).Error; err != nil {
		return fmt.Errorf("failed to count windows: %w", err)
	}
	fmt.Fprintf(out, "%s: applied (%d windows)\n", table, windows)
	return nil
}
