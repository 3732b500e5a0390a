package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhadip/tensibot/internal/bot"
	"github.com/mhadip/tensibot/internal/config"
	"github.com/mhadip/tensibot/internal/gemini"
	"github.com/mhadip/tensibot/internal/home"
	"github.com/mhadip/tensibot/internal/relay"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Telegram bot",
	Long: `Start the Telegram bot and poll for messages.

The bot processes messages from the single authorized user only,
forwards photos and text to Gemini for extraction, and replies with
the structured reading. If a Google Sheets webhook is configured, each
successful reading is also relayed there.

Config changes to the relay webhook and model take effect without a
restart. Credentials and the authorized user are read at startup only.

Examples:
  tensibot serve
  tensibot serve --config ./config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Set up logger
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		cm, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		// Configuration problems are the only fatal errors; everything
		// after startup degrades per message.
		if err := cfg.Validate(); err != nil {
			return err
		}

		analyzer, err := gemini.New(gemini.Config{
			APIKey:  cfg.ResolvedGeminiAPIKey(),
			BaseURL: cfg.Gemini.BaseURL,
			Model:   cfg.Gemini.Model,
			Logger:  logger,
		})
		if err != nil {
			return err
		}

		relayer := relay.New(cfg.ResolvedWebhookURL(), cfg.Relay.Timeout, logger)

		b, err := bot.New(
			cfg.ResolvedTelegramToken(),
			cfg.Telegram.AuthorizedUserID,
			cfg.Telegram.UpdateTimeout,
			analyzer,
			relayer,
			h,
			logger,
		)
		if err != nil {
			return err
		}

		cm.OnChange(func(c *config.Config) {
			analyzer.SetModel(c.Gemini.Model)
			relayer.SetWebhookURL(c.ResolvedWebhookURL())
			logger.Info("configuration reloaded", "model", c.Gemini.Model, "relay_configured", c.ResolvedWebhookURL() != "")
		})
		cm.WatchConfig()

		if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
