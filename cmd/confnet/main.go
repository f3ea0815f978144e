// Package main provides the confnet CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/confnet/internal/config"
	"github.com/matsen/confnet/internal/dashboard"
	"github.com/matsen/confnet/internal/logging"
	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput   bool
	configPath    string
	removeNamed   bool
	removePosters bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors (like missing required flags) are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "confnet",
	Short: "Co-authorship network dashboard for conference programs",
	Long: `confnet turns a conference program (one line per talk or poster:
title, category, participants...) into a co-authorship dashboard.

It draws the people network, the paper network and the person-paper
bipartite network, lists the papers and ranks people by betweenness and
closeness centrality. Two display options remove one named individual
from the networks and drop posters entirely.

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.LoadDotEnv()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	pf.StringVar(&configPath, "config", "", "Config file (default ./confnet.yml, then the global config)")
	pf.BoolVar(&removeNamed, "remove-sandy", false, "Remove the excluded individual from the networks")
	pf.BoolVar(&removePosters, "remove-posters", false, "Drop poster records")
	rootCmd.Version = Version
}

// currentFlags converts the --remove-* switches to display flags.
func currentFlags() record.Flags {
	return record.Flags{
		IncludeNamedIndividual: !removeNamed,
		IncludePosters:         !removePosters,
	}
}

// renderOptions returns the render settings from configuration.
func renderOptions(cfg *config.Config) dashboard.Options {
	return dashboard.Options{ExcludedName: cfg.ExcludedName, Seed: cfg.Seed, Shuffle: cfg.Shuffle}
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustNewLogger builds the logger for cfg, exits on error.
func mustNewLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.LogLevel, humanOutput)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return logger
}

// mustLoadDataset parses the configured dataset, exits on error.
func mustLoadDataset(cfg *config.Config) *record.Dataset {
	ds, err := record.LoadDataset(cfg.DatasetPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage(cfg.DatasetPath))
			os.Exit(ExitConfigError)
		}
		var perr *record.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}
	return ds
}

// mustOpenIndex opens the SQLite query cache and loads ds into it.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenIndex(cfg *config.Config, ds *record.Dataset) *storage.DB {
	dbPath, err := cfg.DBPath()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	if _, err := db.Rebuild(ds.Records()); err != nil {
		db.Close()
		exitWithError(ExitError, "building query cache: %v", err)
	}
	return db
}
