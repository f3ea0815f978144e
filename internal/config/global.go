package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "confnet"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/confnet/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// HelpfulConfigMessage explains how to point confnet at a dataset.
func HelpfulConfigMessage(datasetPath string) string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Dataset not found: %s

Tip: set dataset_path in ./%s or %s:
  mkdir -p %s
  echo 'dataset_path: /path/to/data.txt' > %s

or export %s=/path/to/data.txt`,
		datasetPath,
		ConfigFile,
		configPath,
		filepath.Dir(configPath),
		configPath,
		EnvDataset)
}
