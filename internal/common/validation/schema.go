// Package validation checks API request payloads against JSON schemas
// before they reach the engine.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// compareRequestSchema accepts a loosely-typed own record plus a competitor
// list of the same shape. Vehicle attributes are deliberately open: the
// catalog contract guarantees nothing about field presence.
const compareRequestSchema = `{
	"type": "object",
	"required": ["own"],
	"properties": {
		"own": {"type": "object"},
		"competitors": {
			"type": "array",
			"items": {"type": "object"}
		}
	},
	"additionalProperties": false
}`

// narrativeRequestSchema mirrors the compare shape but allows a missing own
// record; the builder answers that case with an empty script.
const narrativeRequestSchema = `{
	"type": "object",
	"properties": {
		"own": {"type": ["object", "null"]},
		"competitors": {
			"type": "array",
			"items": {"type": "object"}
		}
	},
	"additionalProperties": false
}`

var (
	compareSchema   = gojsonschema.NewStringLoader(compareRequestSchema)
	narrativeSchema = gojsonschema.NewStringLoader(narrativeRequestSchema)
)

// ValidateCompareRequest validates a compare/radar payload.
func ValidateCompareRequest(payload []byte) error {
	return validate(compareSchema, payload)
}

// ValidateNarrativeRequest validates a narrative-fallback payload.
func ValidateNarrativeRequest(payload []byte) error {
	return validate(narrativeSchema, payload)
}

func validate(schema gojsonschema.JSONLoader, payload []byte) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
