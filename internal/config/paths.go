package config

import (
	"os"
	"path/filepath"
)

const appDirName = ".replayview"

// DataDir returns the base data directory for replayview.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDirName), nil
}

func dataPath(name string) (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, name), nil
}

// ConfigPath returns the path to the TOML configuration file.
func ConfigPath() (string, error) {
	return dataPath("config.toml")
}

// TokenPath returns the default path of the API token file.
func TokenPath() (string, error) {
	return dataPath("token")
}

// CachePath returns the default path of the session cache database.
func CachePath() (string, error) {
	return dataPath("cache.db")
}

// UILogPath returns the file the terminal UI logs to.
func UILogPath() (string, error) {
	return dataPath("ui.log")
}
