package database

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	AppDirName       = ".pathly"
	SQLiteDBFileName = "pathly.db"
	ConfigFileName   = "config.toml"
)

// GetAppDir returns ~/.pathly without creating it
func GetAppDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, AppDirName), nil
}

// DBPath returns the SQLite file inside dataDir
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteDBFileName)
}

// GetConfigFilePath returns ~/.pathly/config.toml
func GetConfigFilePath() (string, error) {
	appDir, err := GetAppDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFileName), nil
}
