// Package bot binds inbound Telegram updates to the extraction
// pipeline: authorize, download or read content, analyze, enrich,
// relay, reply. Handlers are pure orchestration; every dependency
// arrives as an interface so the pipeline is testable without the
// Telegram API.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mhadip/tensibot/internal/extract"
)

// Analyzer submits one extraction request to the inference provider.
type Analyzer interface {
	AnalyzeImage(ctx context.Context, imagePath string) extract.Outcome
	AnalyzeText(ctx context.Context, text string) extract.Outcome
}

// Relayer forwards an enriched record to the spreadsheet webhook.
type Relayer interface {
	Configured() bool
	Relay(ctx context.Context, record extract.Record) bool
}

// Sender delivers replies. Satisfied by *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Downloader fetches a photo attachment to local storage and returns
// its path.
type Downloader interface {
	Download(ctx context.Context, photo tgbotapi.PhotoSize, capturedAt time.Time) (string, error)
}

// Handler routes one update through the message pipeline.
type Handler struct {
	sender           Sender
	analyzer         Analyzer
	relayer          Relayer
	downloader       Downloader
	authorizedUserID int64
	logger           *slog.Logger
}

// NewHandler wires a handler. authorizedUserID is the single identity
// allowed to trigger extraction.
func NewHandler(sender Sender, analyzer Analyzer, relayer Relayer, downloader Downloader, authorizedUserID int64, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		sender:           sender,
		analyzer:         analyzer,
		relayer:          relayer,
		downloader:       downloader,
		authorizedUserID: authorizedUserID,
		logger:           logger,
	}
}

// HandleUpdate dispatches one update. Every message reaches a terminal
// state with at most one final reply; faults inside a handler are
// recovered, logged, and reported to the sender instead of crashing
// the poll loop.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	switch {
	case msg.IsCommand():
		h.handleCommand(msg)
	case len(msg.Photo) > 0:
		h.handlePhoto(ctx, msg)
	case msg.Text != "":
		h.handleText(ctx, msg)
	}
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	if msg.Command() != "start" {
		return
	}
	name := "there"
	if msg.From != nil && msg.From.FirstName != "" {
		name = msg.From.FirstName
	}
	h.reply(msg.Chat.ID, fmt.Sprintf("Hi %s! Send me an image of a TensiOne blood pressure monitor, and I'll try to read it using Gemini.", name))
}

func (h *Handler) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	defer h.recoverTo(msg.Chat.ID, "An unexpected error occurred while processing your image with Gemini: %v")

	if !h.authorized(msg) {
		return
	}

	photo := largestPhoto(msg.Photo)
	path, err := h.downloader.Download(ctx, photo, msg.Time())
	if err != nil {
		h.logger.Error("failed to download photo", "user_id", msg.From.ID, "error", err)
		h.reply(msg.Chat.ID, fmt.Sprintf("An unexpected error occurred while processing your image with Gemini: %v", err))
		return
	}
	h.logger.Info("image downloaded", "path", path)

	h.reply(msg.Chat.ID, imageInterimReply)

	outcome := extract.Enrich(h.analyzer.AnalyzeImage(ctx, path), extract.ImageFields)
	h.finish(ctx, msg.Chat.ID, outcome, imageReplyHeader, imageFieldLines)
}

func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	defer h.recoverTo(msg.Chat.ID, "An unexpected error occurred while processing your text message with Gemini: %v")

	if !h.authorized(msg) {
		return
	}

	h.reply(msg.Chat.ID, textInterimReply)

	outcome := extract.Enrich(h.analyzer.AnalyzeText(ctx, msg.Text), extract.TextFields)
	h.finish(ctx, msg.Chat.ID, outcome, textReplyHeader, textFieldLines)
}

// finish relays a structured record, then sends the final reply with
// relay feedback and the token line appended.
func (h *Handler) finish(ctx context.Context, chatID int64, o extract.Outcome, header string, lines []fieldLine) {
	var b strings.Builder
	b.WriteString(renderOutcome(o, header, lines))

	if o.Kind == extract.OutcomeStructured {
		if h.relayer.Configured() {
			record := o.Record.Clone()
			for _, key := range extract.CoreVitals {
				if _, ok := record[key]; !ok {
					record[key] = extract.Sentinel
				}
			}
			if h.relayer.Relay(ctx, record) {
				b.WriteString("\n" + relaySavedLine)
			} else {
				b.WriteString("\n" + relayFailedLine)
			}
		} else {
			b.WriteString("\n" + relayUnconfiguredLine)
		}
	}

	b.WriteString(tokenLine(o))
	h.reply(chatID, b.String())
}

// authorized checks the sender identity. A mismatch sends the fixed
// rejection and short-circuits: no download, no provider call, and the
// message content is never logged.
func (h *Handler) authorized(msg *tgbotapi.Message) bool {
	if msg.From != nil && msg.From.ID == h.authorizedUserID {
		return true
	}
	var from int64
	if msg.From != nil {
		from = msg.From.ID
	}
	h.logger.Info("message from unauthorized user, skipping", "user_id", from)
	h.reply(msg.Chat.ID, rejectionReply)
	return false
}

func (h *Handler) reply(chatID int64, text string) {
	if _, err := h.sender.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		h.logger.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}

// recoverTo converts a handler panic into a logged, user-visible
// failure. One bad message must never take the poll loop down.
func (h *Handler) recoverTo(chatID int64, format string) {
	if r := recover(); r != nil {
		h.logger.Error("unhandled fault in message handler", "chat_id", chatID, "panic", r)
		h.reply(chatID, fmt.Sprintf(format, r))
	}
}

// largestPhoto picks the biggest rendition Telegram offers for a photo
// message.
func largestPhoto(sizes []tgbotapi.PhotoSize) tgbotapi.PhotoSize {
	best := sizes[0]
	for _, s := range sizes[1:] {
		if s.Width*s.Height > best.Width*best.Height {
			best = s
		}
	}
	return best
}
