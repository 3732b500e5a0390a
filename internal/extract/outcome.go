package extract

import "fmt"

// Sentinel is the placeholder value the extraction prompts require for
// fields the model could not determine.
const Sentinel = "Not visible"

// TokenCountKey is the reserved record key carrying the provider's
// input-token estimate. It is not a domain field and is never part of
// a required field set.
const TokenCountKey = "_token_count"

// Field sets for the two request kinds. Every key listed here is
// present on a record once normalization and enrichment succeed.
var (
	// ImageFields are extracted from blood pressure monitor photos.
	ImageFields = []string{"systolic", "diastolic", "heart_rate", "date"}

	// TextFields are extracted from free-form text messages and add
	// waist circumference (lingkar perut) and body weight (berat badan).
	TextFields = []string{"systolic", "diastolic", "heart_rate", "lingkar_perut", "berat_badan", "date"}

	// CoreVitals are the columns the spreadsheet webhook always expects.
	// Text-derived records are padded with these before relaying so the
	// sheet degrades gracefully instead of erroring on missing columns.
	CoreVitals = []string{"systolic", "diastolic", "heart_rate"}
)

// Record is a normalized extraction result. Values the prompts ask for
// are strings (or the sentinel); keys the provider adds beyond the
// field set are tolerated and passed through untouched.
type Record map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// StringValue returns the record value for key if it is a string.
func (r Record) StringValue(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// OutcomeKind discriminates the Outcome union.
type OutcomeKind string

const (
	// OutcomeStructured means the completion parsed as a JSON object.
	OutcomeStructured OutcomeKind = "structured"
	// OutcomeUnparsed means the completion was not a JSON object; the
	// raw text is preserved for manual inspection.
	OutcomeUnparsed OutcomeKind = "unparsed"
	// OutcomeBlocked means the provider refused to produce content.
	OutcomeBlocked OutcomeKind = "blocked"
	// OutcomeProviderError means a transport or provider-level failure.
	OutcomeProviderError OutcomeKind = "provider_error"
)

// Outcome is the result of one inference call after normalization.
// Exactly one variant is populated; Kind tells which. An Outcome is
// immutable once produced.
type Outcome struct {
	Kind OutcomeKind

	// Structured
	Record Record

	// Unparsed. RawText is the post-fence-strip completion, verbatim.
	RawText     string
	ParseDetail string

	// Blocked
	BlockReason string

	// ProviderError
	ErrorMessage string
}

// Structured wraps a parsed record.
func Structured(rec Record) Outcome {
	return Outcome{Kind: OutcomeStructured, Record: rec}
}

// Unparsed preserves a completion that was not a JSON object.
func Unparsed(raw, detail string) Outcome {
	return Outcome{Kind: OutcomeUnparsed, RawText: raw, ParseDetail: detail}
}

// Blocked records a provider content refusal.
func Blocked(reason string) Outcome {
	return Outcome{Kind: OutcomeBlocked, BlockReason: reason}
}

// ProviderError records a transport or provider-level failure.
func ProviderError(msg string) Outcome {
	return Outcome{Kind: OutcomeProviderError, ErrorMessage: msg}
}

// ProviderErrorf is ProviderError with formatting.
func ProviderErrorf(format string, args ...any) Outcome {
	return ProviderError(fmt.Sprintf(format, args...))
}
