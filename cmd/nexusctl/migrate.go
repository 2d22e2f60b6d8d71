package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"nexus-project-api/internal/database"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Run auto-migration for every model, one table at a time.

Examples:
  nexusctl migrate
  nexusctl migrate --config /etc/nexus/config.yaml -v`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := database.SafeAutoMigrate(e.db, e.logger); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Migration completed")
	return nil
}
