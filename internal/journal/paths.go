package journal

import (
	"os"
	"path/filepath"
)

const appName = "chessboard-backend"

// DefaultDir returns the default journal directory under the platform data
// dir, creating it if needed.
// - Linux: $XDG_DATA_HOME/chessboard-backend/journal or ~/.local/share/...
// - macOS/Windows fall back to the home directory layout.
func DefaultDir() (string, error) {
	baseDir := os.Getenv("XDG_DATA_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, ".local", "share")
	}

	dir := filepath.Join(baseDir, appName, "journal")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	return dir, nil
}
