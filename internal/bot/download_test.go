package bot

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mhadip/tensibot/internal/home"
)

type fakeFileResolver struct {
	file tgbotapi.File
	err  error
}

func (r *fakeFileResolver) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	return r.file, r.err
}

func testDownloader(t *testing.T, srvURL string, resolver fileResolver) (*AttachmentDownloader, *home.Dir) {
	t.Helper()
	dir, err := home.New(t.TempDir())
	if err != nil {
		t.Fatalf("home.New: %v", err)
	}
	if err := dir.EnsureExists(); err != nil {
		t.Fatalf("EnsureExists: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	d := NewAttachmentDownloader(resolver, "test-token", dir, logger)
	d.fileEndpoint = srvURL + "/file/bot%s/%s"
	return d, dir
}

func TestDownloadWritesAttachment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "photos/file_1.jpg") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	d, _ := testDownloader(t, srv.URL, &fakeFileResolver{file: tgbotapi.File{FilePath: "photos/file_1.jpg"}})

	capturedAt := time.Date(2024, 7, 28, 9, 30, 15, 0, time.Local)
	path, err := d.Download(context.Background(), tgbotapi.PhotoSize{FileID: "f", FileUniqueID: "AQADBAAD"}, capturedAt)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if filepath.Base(path) != "gemini_AQADBAAD_20240728_093015.jpg" {
		t.Errorf("file name = %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("file content = %q", data)
	}
}

func TestDownloadRetriesTransientFailure(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "try again", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("jpeg-bytes"))
	}))
	defer srv.Close()

	d, _ := testDownloader(t, srv.URL, &fakeFileResolver{file: tgbotapi.File{FilePath: "photos/file_1.jpg"}})

	if _, err := d.Download(context.Background(), tgbotapi.PhotoSize{FileID: "f", FileUniqueID: "AQADBAAD"}, time.Now()); err != nil {
		t.Fatalf("Download should retry past one failure: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}

func TestDownloadResolveFailure(t *testing.T) {
	d, _ := testDownloader(t, "http://127.0.0.1:0", &fakeFileResolver{err: context.DeadlineExceeded})

	if _, err := d.Download(context.Background(), tgbotapi.PhotoSize{FileID: "f"}, time.Now()); err == nil {
		t.Fatal("expected error when file resolution fails")
	}
}
