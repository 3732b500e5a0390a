package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// relayRecordSchema documents the fixed column set the spreadsheet
// webhook expects from an enriched record. Extra keys (including the
// reserved token-count key) are allowed.
const relayRecordSchema = `{
	"type": "object",
	"properties": {
		"systolic": {"type": "string"},
		"diastolic": {"type": "string"},
		"heart_rate": {"type": "string"},
		"date": {"type": "string"}
	},
	"required": ["systolic", "diastolic", "heart_rate", "date"],
	"additionalProperties": true
}`

var (
	relaySchemaOnce sync.Once
	relaySchema     *jsonschema.Schema
	relaySchemaErr  error
)

// ValidateRelayRecord checks an enriched record against the relay
// column schema. Validation is diagnostic only: callers log failures
// but never use them to block a relay attempt, since the webhook is
// expected to degrade gracefully.
func ValidateRelayRecord(rec Record) error {
	relaySchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("record.json", strings.NewReader(relayRecordSchema)); err != nil {
			relaySchemaErr = fmt.Errorf("failed to load relay record schema: %w", err)
			return
		}
		relaySchema, relaySchemaErr = compiler.Compile("record.json")
	})
	if relaySchemaErr != nil {
		return relaySchemaErr
	}

	// Round-trip through JSON so validation sees decoded JSON types
	// regardless of how the record values were produced.
	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record for validation: %w", err)
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("failed to decode record for validation: %w", err)
	}

	if err := relaySchema.Validate(doc); err != nil {
		return fmt.Errorf("record does not match relay schema: %w", err)
	}
	return nil
}
