package extract

import "testing"

func TestNormalizeFencedJSON(t *testing.T) {
	raw := "```json\n{\"systolic\":\"120\",\"diastolic\":\"80\",\"heart_rate\":\"75\",\"date\":\"Not visible\"}\n```"

	o := Normalize(raw)
	if o.Kind != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s (%s)", o.Kind, o.ParseDetail)
	}

	for key, want := range map[string]string{
		"systolic":   "120",
		"diastolic":  "80",
		"heart_rate": "75",
		"date":       Sentinel,
	} {
		got, ok := o.Record.StringValue(key)
		if !ok || got != want {
			t.Errorf("record[%s] = %q (present=%v), want %q", key, got, ok, want)
		}
	}
}

func TestNormalizeUnfencedJSON(t *testing.T) {
	o := Normalize(`{"systolic":"105","diastolic":"63","heart_rate":"91","date":"Not visible"}`)
	if o.Kind != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", o.Kind)
	}
}

func TestNormalizeExtraKeysPassThrough(t *testing.T) {
	o := Normalize(`{"systolic":"120","confidence":"high"}`)
	if o.Kind != OutcomeStructured {
		t.Fatalf("expected structured outcome, got %s", o.Kind)
	}
	if v, ok := o.Record.StringValue("confidence"); !ok || v != "high" {
		t.Fatalf("provider-added key should pass through, got %q (present=%v)", v, ok)
	}
}

func TestNormalizeProsePreservesRawText(t *testing.T) {
	raw := "I cannot read this image."

	o := Normalize(raw)
	if o.Kind != OutcomeUnparsed {
		t.Fatalf("expected unparsed outcome, got %s", o.Kind)
	}
	if o.RawText != raw {
		t.Errorf("raw text must be preserved verbatim, got %q", o.RawText)
	}
	if o.ParseDetail == "" {
		t.Error("expected a parse error detail")
	}
}

func TestNormalizeFencedProseKeepsStrippedText(t *testing.T) {
	o := Normalize("```\nnot json at all\n```")
	if o.Kind != OutcomeUnparsed {
		t.Fatalf("expected unparsed outcome, got %s", o.Kind)
	}
	if o.RawText != "not json at all" {
		t.Errorf("expected post-strip raw text, got %q", o.RawText)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	o := Normalize("")
	if o.Kind != OutcomeUnparsed {
		t.Fatalf("expected unparsed outcome, got %s", o.Kind)
	}
	if o.RawText != "" {
		t.Errorf("expected empty raw text, got %q", o.RawText)
	}
}

// Syntactically valid JSON that is not an object is treated as
// unparsed: the schema requires an object.
func TestNormalizeNonObjectJSON(t *testing.T) {
	for _, in := range []string{`[1,2,3]`, `42`, `"just a string"`, `null`, `true`} {
		o := Normalize(in)
		if o.Kind != OutcomeUnparsed {
			t.Errorf("Normalize(%q).Kind = %s, want unparsed", in, o.Kind)
		}
		if o.RawText != in {
			t.Errorf("Normalize(%q) raw = %q, want input preserved", in, o.RawText)
		}
	}
}

func TestNormalizeNeverMixesVariants(t *testing.T) {
	structured := Normalize(`{"a":"b"}`)
	if structured.RawText != "" || structured.BlockReason != "" || structured.ErrorMessage != "" {
		t.Error("structured outcome must not populate other variants")
	}

	unparsed := Normalize("nope")
	if unparsed.Record != nil || unparsed.BlockReason != "" || unparsed.ErrorMessage != "" {
		t.Error("unparsed outcome must not populate other variants")
	}
}
