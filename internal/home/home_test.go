package home

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewDefaultsToUserHome(t *testing.T) {
	d, err := New("")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !strings.HasSuffix(d.Path(), DefaultDirName) {
		t.Fatalf("default path should end in %s, got %s", DefaultDirName, d.Path())
	}
}

func TestEnsureExistsCreatesDownloads(t *testing.T) {
	root := filepath.Join(t.TempDir(), "bot-home")
	d, err := New(root)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if d.Exists() {
		t.Fatal("home directory should not exist yet")
	}
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if _, err := os.Stat(d.DownloadsPath()); err != nil {
		t.Fatalf("downloads directory missing: %v", err)
	}

	// Idempotent.
	if err := d.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists() second call error = %v", err)
	}
}

func TestDownloadPathFormat(t *testing.T) {
	d, err := New("/tmp/tensibot-test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ts := time.Date(2024, 7, 28, 9, 30, 15, 0, time.UTC)
	got := d.DownloadPath("AQADBAAD", ts)
	want := filepath.Join("/tmp/tensibot-test", DownloadsDirName, "gemini_AQADBAAD_20240728_093015.jpg")
	if got != want {
		t.Fatalf("DownloadPath() = %s, want %s", got, want)
	}
}
