package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"notesapi/internal/config"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	portFlag   string
	storeFlag  string
)

// rootCmd serves the notes API when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "notesapi",
	Short: "A small JSON API for notes",
	Long: `notesapi serves create, read and update endpoints for notes
backed by SQLite, PostgreSQL, MongoDB or an in-memory store.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		return serve(cmd.Context(), cfg, logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Store driver: sqlite, postgres, mongo or memory")
	rootCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Port to listen on")
}

// setup loads configuration, applies flags and builds the logger
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}
	if storeFlag != "" {
		cfg.Store.Driver = storeFlag
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, newLogger(cfg.Log), nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
