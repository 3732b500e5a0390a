package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mhadip/tensibot/internal/home"
)

// DefaultUpdateTimeout is the long-poll timeout in seconds.
const DefaultUpdateTimeout = 30

// Bot owns the Telegram long-poll loop and hands each update to the
// Handler.
type Bot struct {
	api           *tgbotapi.BotAPI
	handler       *Handler
	updateTimeout int
	logger        *slog.Logger
}

// New connects to the Telegram API and wires the full message
// pipeline.
func New(token string, authorizedUserID int64, updateTimeout int, analyzer Analyzer, relayer Relayer, homeDir *home.Dir, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if updateTimeout <= 0 {
		updateTimeout = DefaultUpdateTimeout
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram client: %w", err)
	}

	downloader := NewAttachmentDownloader(api, token, homeDir, logger)
	handler := NewHandler(api, analyzer, relayer, downloader, authorizedUserID, logger)

	return &Bot{
		api:           api,
		handler:       handler,
		updateTimeout: updateTimeout,
		logger:        logger,
	}, nil
}

// Run polls for updates until the context is canceled. Updates are
// handled sequentially; the single authorized user never produces
// enough traffic to need more.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("telegram bot starting", "username", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.updateTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("telegram bot stopped")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handler.HandleUpdate(ctx, update)
		}
	}
}
