package extract

import "time"

// DateLayout is the wire format for the date field.
const DateLayout = "2006-01-02"

// Enrich applies the field-level fallback policy to a structured
// outcome: a date that is missing, empty, or the sentinel becomes
// today's local date, and every field in required that is absent from
// the record is filled with the sentinel.
//
// Non-structured outcomes pass through unchanged; enrichment never
// fabricates data for a failed extraction. Enrich is idempotent: once
// the date holds a real value the fallback no longer matches.
func Enrich(o Outcome, required []string) Outcome {
	return enrichAt(o, required, time.Now())
}

func enrichAt(o Outcome, required []string, now time.Time) Outcome {
	if o.Kind != OutcomeStructured {
		return o
	}

	rec := o.Record.Clone()

	if v, ok := rec["date"]; !ok || isUnsetValue(v) {
		rec["date"] = now.Format(DateLayout)
	}

	for _, field := range required {
		if _, ok := rec[field]; !ok {
			rec[field] = Sentinel
		}
	}

	return Structured(rec)
}

// isUnsetValue reports whether a date value should fall back to today.
// Non-string values are left alone; the provider is asked for strings
// but extra shapes are passed through rather than rewritten.
func isUnsetValue(v any) bool {
	s, ok := v.(string)
	return ok && (s == "" || s == Sentinel)
}
