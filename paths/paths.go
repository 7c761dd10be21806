package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// dirName is the per-user and per-directory hungie folder
const dirName = ".hungie"

// GetUserDir returns the user-level hungie directory (~/.hungie)
func GetUserDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, dirName), nil
}

// GetGlobalConfigPath returns the path to the global config file
func GetGlobalConfigPath() (string, error) {
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(userDir, "config.json"), nil
}

// GetDefaultLogPath returns where logs go when no log file is configured
func GetDefaultLogPath() (string, error) {
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(userDir, "hungie.log"), nil
}

// LocalDir returns the hungie directory inside workDir
func LocalDir(workDir string) string {
	return filepath.Join(workDir, dirName)
}

// LocalConfigPath returns the directory-local config file
func LocalConfigPath(workDir string) string {
	return filepath.Join(LocalDir(workDir), "config.json")
}

// EnsureDir creates dir and its parents if needed
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
