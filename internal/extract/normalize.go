package extract

import "encoding/json"

// Normalize converts one raw completion into an Outcome. The text is
// fence-stripped and then parsed as a strict JSON object. Normalize is
// pure and never fails: malformed input yields an Unparsed outcome
// carrying the post-fence-strip text so the caller can surface it for
// manual inspection.
//
// Valid JSON that is not an object (a bare array, number, string, or
// null) is also Unparsed: the record schema requires an object, and
// the provider prompt asks for one.
func Normalize(raw string) Outcome {
	text := StripFences(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return Unparsed(text, err.Error())
	}
	if obj == nil {
		// "null" unmarshals into a nil map without error.
		return Unparsed(text, "completion is valid JSON but not an object")
	}

	return Structured(Record(obj))
}
