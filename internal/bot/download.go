package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mhadip/tensibot/internal/home"
)

// fileResolver is the slice of the Telegram API the downloader needs.
type fileResolver interface {
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
}

// AttachmentDownloader fetches photo attachments into the home
// directory's downloads folder. Files are kept indefinitely.
type AttachmentDownloader struct {
	api          fileResolver
	token        string
	fileEndpoint string
	home         *home.Dir
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewAttachmentDownloader builds a downloader backed by the Telegram
// file endpoint.
func NewAttachmentDownloader(api fileResolver, token string, homeDir *home.Dir, logger *slog.Logger) *AttachmentDownloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttachmentDownloader{
		api:          api,
		token:        token,
		fileEndpoint: tgbotapi.FileEndpoint,
		home:         homeDir,
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		logger:       logger,
	}
}

// Download resolves the photo's file path, fetches the bytes, and
// writes them under downloads/ named by the photo's uniqueness token
// and the message capture time. The fetch is retried a few times since
// Telegram's file CDN is occasionally flaky right after upload.
func (d *AttachmentDownloader) Download(ctx context.Context, photo tgbotapi.PhotoSize, capturedAt time.Time) (string, error) {
	file, err := d.api.GetFile(tgbotapi.FileConfig{FileID: photo.FileID})
	if err != nil {
		return "", fmt.Errorf("failed to resolve attachment file: %w", err)
	}

	url := fmt.Sprintf(d.fileEndpoint, d.token, file.FilePath)
	dest := d.home.DownloadPath(photo.FileUniqueID, capturedAt)

	var data []byte
	err = retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			resp, err := d.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unexpected status %d fetching attachment", resp.StatusCode)
			}
			data, err = io.ReadAll(resp.Body)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch attachment: %w", err)
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write attachment to %s: %w", dest, err)
	}

	d.logger.Info("attachment downloaded", "path", dest, "bytes", len(data))
	return dest, nil
}
