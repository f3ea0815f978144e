// Package config handles dashboard configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the dashboard configuration, read from confnet.yml.
type Config struct {
	DatasetPath    string   `yaml:"dataset_path" json:"dataset_path" validate:"required"`
	ExcludedName   string   `yaml:"excluded_name" json:"excluded_name" validate:"required"`
	ListenAddr     string   `yaml:"listen_addr" json:"listen_addr" validate:"required,hostname_port"`
	Layout         string   `yaml:"layout" json:"layout" validate:"oneof=force circle grid tree"`
	Seed           int64    `yaml:"seed" json:"seed"`
	Shuffle        bool     `yaml:"shuffle" json:"shuffle"`
	LogLevel       string   `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
	CacheDir       string   `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`
	Watch          bool     `yaml:"watch" json:"watch"`
	RateLimit      float64  `yaml:"rate_limit" json:"rate_limit" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty" json:"allowed_origins,omitempty" validate:"dive,required"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `yaml:"-" json:"source,omitempty"`
}

const (
	// ConfigFile is looked up in the working directory.
	ConfigFile = "confnet.yml"
	// DBFile is the query cache inside CacheDir.
	DBFile = "records.db"
)

// Environment variables that override file settings.
const (
	EnvDataset      = "CONFNET_DATASET"
	EnvListenAddr   = "CONFNET_LISTEN_ADDR"
	EnvExcludedName = "CONFNET_EXCLUDED_NAME"
	EnvLogLevel     = "CONFNET_LOG_LEVEL"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DatasetPath:  "data.txt",
		ExcludedName: "Sandy",
		ListenAddr:   ":8050",
		Layout:       "force",
		Shuffle:      true,
		LogLevel:     "info",
	}
}

// Load builds the configuration. Defaults are overlaid with the first file
// found among explicit, ./confnet.yml and the global config, then with
// CONFNET_* environment variables. An explicit path that does not exist is an
// error; the other locations are optional.
func Load(explicit string) (*Config, error) {
	cfg := Default()

	path, err := findConfigFile(explicit)
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
		cfg.Source = path
	}

	cfg.applyEnv()
	cfg.DatasetPath = ExpandPath(cfg.DatasetPath)
	cfg.CacheDir = ExpandPath(cfg.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	for _, candidate := range []string{ConfigFile, GlobalConfigPath()} {
		if candidate == "" {
			continue
		}
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", nil
}

func (c *Config) applyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvDataset, &c.DatasetPath},
		{EnvListenAddr, &c.ListenAddr},
		{EnvExcludedName, &c.ExcludedName},
		{EnvLogLevel, &c.LogLevel},
	}
	for _, o := range overrides {
		if v, ok := os.LookupEnv(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

// Validate checks the struct tags and reports every failing field.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "hostname_port":
		return fmt.Sprintf("%s must be host:port, got %q", field, e.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DBPath returns the location of the SQLite query cache.
func (c *Config) DBPath() (string, error) {
	dir := c.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("locating cache directory: %w", err)
		}
		dir = filepath.Join(base, GlobalConfigDir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}
	return filepath.Join(dir, DBFile), nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (default ".env") into
// the environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := godotenv.Load(present...); err != nil {
		return fmt.Errorf("loading env file: %w", err)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
