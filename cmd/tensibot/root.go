package main

import (
	"github.com/spf13/cobra"

	"github.com/mhadip/tensibot/internal/cliout"
	"github.com/mhadip/tensibot/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "tensibot",
	Short: "Telegram bot that reads blood pressure monitors with Gemini",
	Long: `Tensibot is a Telegram bot that turns photos of a TensiOne blood
pressure monitor, or free-form health text messages, into structured
readings using Gemini vision.

For each message it:
  - Extracts systolic, diastolic, heart rate, and date (plus waist
    circumference and body weight for text messages)
  - Fills in today's date when the display shows none
  - Optionally relays the reading to a Google Sheets webhook
  - Replies with the extracted values and units`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.tensibot/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "tensibot home directory (default: ~/.tensibot)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cliout.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
