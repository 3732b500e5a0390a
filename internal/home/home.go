package home

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	// DefaultDirName is the default name for the tensibot home directory.
	DefaultDirName = ".tensibot"

	// DownloadsDirName is the subdirectory where incoming photo
	// attachments are stored. Files are retained indefinitely.
	DownloadsDirName = "downloads"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the tensibot home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.tensibot).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// DownloadsPath returns the path to the downloads directory.
func (d *Dir) DownloadsPath() string {
	return filepath.Join(d.path, DownloadsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they
// don't exist. Safe to call repeatedly.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DownloadsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create downloads directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// DownloadPath returns the storage path for an incoming photo attachment.
// The name combines the transport's uniqueness token with the message
// capture time so repeated sends of the same photo stay distinguishable.
func (d *Dir) DownloadPath(uniqueID string, capturedAt time.Time) string {
	name := fmt.Sprintf("gemini_%s_%s.jpg", uniqueID, capturedAt.Format("20060102_150405"))
	return filepath.Join(d.DownloadsPath(), name)
}
