package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/confnet/internal/config"
)

var configInit bool

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write the default configuration to ./confnet.yml")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key]",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after files and CONFNET_* environment
variables are applied, or a single value.

Keys: dataset-path, excluded-name, listen-addr, layout, seed, shuffle,
log-level, cache-dir, watch, rate-limit, allowed-origins, source.

Examples:
  confnet config --human
  confnet config dataset-path
  confnet config --init`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfig,
}

// ConfigValueResponse is the JSON output for a single configuration key.
type ConfigValueResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

func runConfig(cmd *cobra.Command, args []string) error {
	if configInit {
		return runConfigInit()
	}

	cfg := mustLoadConfig()
	if len(args) == 0 {
		if !humanOutput {
			return outputJSON(cfg)
		}
		printConfigHuman(cfg)
		return nil
	}

	key := normalizeConfigKey(args[0])
	value, ok := configValue(cfg, key)
	if !ok {
		exitWithError(ExitError, "unknown config key: %s", args[0])
	}
	if !humanOutput {
		return outputJSON(ConfigValueResponse{Key: key, Value: value})
	}
	outputHuman("%v\n", value)
	return nil
}

func runConfigInit() error {
	if _, err := os.Stat(config.ConfigFile); err == nil {
		exitWithError(ExitConfigError, "%s already exists", config.ConfigFile)
	} else if !errors.Is(err, os.ErrNotExist) {
		exitWithError(ExitConfigError, "checking %s: %v", config.ConfigFile, err)
	}
	if err := config.Default().Save(config.ConfigFile); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if !humanOutput {
		return outputJSON(OutputResponse{Output: config.ConfigFile})
	}
	outputHuman("Wrote default configuration to %s\n", config.ConfigFile)
	return nil
}

// normalizeConfigKey accepts dataset-path, dataset_path and datasetpath.
func normalizeConfigKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "datasetpath", "dataset":
		return "dataset_path"
	case "excludedname":
		return "excluded_name"
	case "listenaddr", "addr":
		return "listen_addr"
	case "loglevel":
		return "log_level"
	case "cachedir":
		return "cache_dir"
	case "ratelimit":
		return "rate_limit"
	case "allowedorigins":
		return "allowed_origins"
	}
	return key
}

func configValue(cfg *config.Config, key string) (interface{}, bool) {
	switch key {
	case "dataset_path":
		return cfg.DatasetPath, true
	case "excluded_name":
		return cfg.ExcludedName, true
	case "listen_addr":
		return cfg.ListenAddr, true
	case "layout":
		return cfg.Layout, true
	case "seed":
		return cfg.Seed, true
	case "shuffle":
		return cfg.Shuffle, true
	case "log_level":
		return cfg.LogLevel, true
	case "cache_dir":
		return cfg.CacheDir, true
	case "watch":
		return cfg.Watch, true
	case "rate_limit":
		return cfg.RateLimit, true
	case "allowed_origins":
		if cfg.AllowedOrigins == nil {
			return []string{}, true
		}
		return cfg.AllowedOrigins, true
	case "source":
		return cfg.Source, true
	}
	return nil, false
}

func printConfigHuman(cfg *config.Config) {
	source := cfg.Source
	if source == "" {
		source = "(defaults)"
	}
	rows := [][2]string{
		{"source", source},
		{"dataset_path", cfg.DatasetPath},
		{"excluded_name", cfg.ExcludedName},
		{"listen_addr", cfg.ListenAddr},
		{"layout", cfg.Layout},
		{"seed", fmt.Sprint(cfg.Seed)},
		{"shuffle", fmt.Sprint(cfg.Shuffle)},
		{"log_level", cfg.LogLevel},
		{"cache_dir", cfg.CacheDir},
		{"watch", fmt.Sprint(cfg.Watch)},
		{"rate_limit", fmt.Sprint(cfg.RateLimit)},
		{"allowed_origins", strings.Join(cfg.AllowedOrigins, ", ")},
	}
	for _, row := range rows {
		outputHuman("%-16s %s\n", row[0], row[1])
	}
}
