package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/config"
	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/service"
	"github.com/pable/go-draft-metrics/internal/storage"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg *config.Config
)

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
	cWarn   = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "draftmetrics",
	Short: "Draft analytics for 5v5 MOBA scrims and tournaments",
	Long: `Import recorded pick/ban drafts and compute hero, combo, side and draft-order
statistics, team lane profiles and draft recommendations.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (falls back to $"+config.EnvConfig+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(rosterCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(dropCmd)
}

// setup loads configuration and installs the global logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		c.DBPath = dbPath
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	logger.Init()
	if err := logger.SetLevelString(c.LogLevel); err != nil {
		return err
	}
	cfg = c
	return nil
}

func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func newAnalyzer(db *storage.DB, opts ...service.Option) *service.Analyzer {
	opts = append([]service.Option{
		service.WithLogger(logger.Named("analyzer")),
		service.WithDefaultVersion(cfg.DefaultVersion),
	}, opts...)
	return service.New(db, opts...)
}
