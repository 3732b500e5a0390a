package bot

import (
	"fmt"
	"strings"

	"github.com/mhadip/tensibot/internal/extract"
)

const (
	imageReplyHeader = "--- Extracted Data (Gemini) ---"
	textReplyHeader  = "--- Extracted Data from Text (Gemini) ---"

	imageInterimReply = "Image received! Processing with Gemini... 🧠✨"
	textInterimReply  = "Text message received! Analyzing with Gemini... 🧠💬"

	rejectionReply = "Maaf, Anda tidak berwenang untuk menggunakan fitur ini."

	relaySavedLine        = "✅ Data also saved to Google Sheets."
	relayFailedLine       = "⚠️ Failed to save data to Google Sheets."
	relayUnconfiguredLine = "ℹ️ Google Sheets URL not configured; data not saved to GSheet."
)

// fieldLine maps a record key to its user-facing line with units.
type fieldLine struct {
	key    string
	format string
}

var imageFieldLines = []fieldLine{
	{"systolic", "Systolic (SYS): %s mmHg"},
	{"diastolic", "Diastolic (DIA): %s mmHg"},
	{"heart_rate", "Heart Rate (P/min): %s bpm"},
	{"date", "Date: %s"},
}

var textFieldLines = []fieldLine{
	{"systolic", "Systolic (SYS): %s mmHg"},
	{"diastolic", "Diastolic (DIA): %s mmHg"},
	{"heart_rate", "Heart Rate (P/min): %s bpm"},
	{"lingkar_perut", "Waist Circumference (LP): %s cm"},
	{"berat_badan", "Body Weight (BB): %s kg"},
	{"date", "Date: %s"},
}

// renderOutcome produces the variant-specific body of a reply. Relay
// feedback and the token line are appended by the handler afterwards.
func renderOutcome(o extract.Outcome, header string, lines []fieldLine) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')

	switch o.Kind {
	case extract.OutcomeStructured:
		for _, l := range lines {
			fmt.Fprintf(&b, l.format+"\n", fieldValue(o.Record, l.key))
		}
	case extract.OutcomeUnparsed:
		b.WriteString("Could not parse JSON from Gemini. Raw output:\n")
		b.WriteString(o.RawText)
		if o.ParseDetail != "" {
			fmt.Fprintf(&b, "\nDetail: %s", o.ParseDetail)
		}
	case extract.OutcomeBlocked:
		fmt.Fprintf(&b, "Error: Request blocked: %s\n", o.BlockReason)
	case extract.OutcomeProviderError:
		fmt.Fprintf(&b, "Error: %s\n", o.ErrorMessage)
	}

	return b.String()
}

// fieldValue renders a record value for display. Enrichment guarantees
// the required keys, so the N/A fallback only shows for extra lines or
// non-string shapes the provider slipped in.
func fieldValue(rec extract.Record, key string) string {
	v, ok := rec[key]
	if !ok {
		return "N/A"
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// tokenLine renders the input-token estimate appended to every reply.
func tokenLine(o extract.Outcome) string {
	count := "N/A"
	if o.Kind == extract.OutcomeStructured {
		if v, ok := o.Record[extract.TokenCountKey]; ok {
			count = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("\n🪙 Estimated input tokens: %s", count)
}
