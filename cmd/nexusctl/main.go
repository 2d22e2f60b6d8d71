// Package main implements nexusctl, the operator CLI for the project API database.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"nexus-project-api/internal/config"
	"nexus-project-api/internal/database"
)

var (
	// configPath points at the same yaml file the API reads
	configPath string
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nexusctl",
	Short: "Operator CLI for the Nexus project API",
	Long: `nexusctl runs maintenance tasks against the database configured for the API:
schema migration, system actor provisioning and one-off cleanup runs.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "configs/config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "path to config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

// env bundles what every subcommand needs
type env struct {
	cfg    *config.Config
	db     *gorm.DB
	logger *zap.Logger
}

func (e *env) Close() {
	_ = database.Close(e.db)
	_ = e.logger.Sync()
}

func openEnv() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if !verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, db: db, logger: logger}, nil
}
