package workspace

import (
	"os"
	"path/filepath"

	"hungie/paths"
)

// DetectWorkspace finds the directory whose .hungie/ settings apply.
// It walks up looking for a .hungie directory, then for a Git repository
// root, and otherwise uses the current directory.
func DetectWorkspace() (string, error) {
	pwd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	if root := findSettingsRoot(pwd); root != "" {
		return root, nil
	}

	if gitRoot := findGitRoot(pwd); gitRoot != "" {
		return gitRoot, nil
	}

	return pwd, nil
}

// findSettingsRoot walks up looking for a local .hungie directory. The
// per-user ~/.hungie holds global settings and does not count.
func findSettingsRoot(startPath string) string {
	userDir, _ := paths.GetUserDir()
	return walkUp(startPath, func(dir string) bool {
		local := paths.LocalDir(dir)
		if local == userDir {
			return false
		}
		info, err := os.Stat(local)
		return err == nil && info.IsDir()
	})
}

// findGitRoot walks up the directory tree looking for a .git entry
func findGitRoot(startPath string) string {
	return walkUp(startPath, func(dir string) bool {
		_, err := os.Stat(filepath.Join(dir, ".git"))
		return err == nil
	})
}

// walkUp returns the first directory from startPath upward that matches
func walkUp(startPath string, match func(dir string) bool) string {
	if startPath == "" {
		return ""
	}
	currentPath := startPath

	for {
		if match(currentPath) {
			return currentPath
		}

		parentPath := filepath.Dir(currentPath)
		if parentPath == currentPath {
			// Reached the root directory
			break
		}
		currentPath = parentPath
	}

	return ""
}
