package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/sigil/internal/constants"
	"github.com/mrz1836/sigil/internal/errors"
)

// GlobalConfigDir returns the path to the global sigil configuration
// directory, typically ~/.sigil.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.SigilHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.sigil/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the relative path to the project configuration
// file, always .sigil/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.SigilHome, constants.ConfigFileName)
}

// LogsDir returns the directory for log files, typically ~/.sigil/logs.
func LogsDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.LogsDir), nil
}
