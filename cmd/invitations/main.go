// Package main provides the command-line interface for maintaining the
// invited list and generating per-location invitation letters.
package main

import (
	"fmt"
	"os"

	"github.com/jonathan/invitation-letters/internal/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	databaseURL string
	sqlitePath  string
	verbose     bool

	// cfg is the merged configuration, set before any subcommand runs.
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "invitations",
	Short: "Invitation letter generator",
	Long: `invitations keeps an invited list drawn from an employee roster and writes one
letter per work location, with Arabic collective titles agreed in gender and number.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		zcfg := zap.NewProductionConfig()
		if cfg.Verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("configuration loaded",
			zap.String("command", cmd.Name()),
			zap.Bool("postgres", cfg.UsesPostgres()),
			zap.String("sqlite_path", cfg.SQLitePath),
			zap.String("output_dir", cfg.OutputDir))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&databaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&sqlitePath, "sqlite", "", "SQLite database file used when no PostgreSQL URL is set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed output and debug logs")
}

// loadConfig merges, in decreasing priority: flags, the config file, the
// environment and the defaults.
func loadConfig() error {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fileCfg = *loaded
	}

	if databaseURL != "" {
		fileCfg.DatabaseURL = databaseURL
	}
	if sqlitePath != "" {
		fileCfg.SQLitePath = sqlitePath
	}
	if verbose {
		fileCfg.Verbose = true
	}
	if err := fileCfg.ApplyEnv(); err != nil {
		return err
	}

	cfg = fileCfg.MergeWithDefaults(config.Default())
	return cfg.Validate()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
