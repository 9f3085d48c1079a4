package confidence

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// recordSchema describes the fields a confidence record must carry. Shape
// relations between fields are checked by Record.Validate.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"atom_plddts", "atom_chain_ids", "pae", "token_chain_ids"},
	"properties": map[string]any{
		"atom_plddts": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "number"},
		},
		"atom_chain_ids": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"pae": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "number"},
			},
		},
		"token_chain_ids": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
	},
}

var schemaLoader = gojsonschema.NewGoLoader(recordSchema)

// validateSchema checks raw JSON against recordSchema.
func validateSchema(data []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var details []string
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(details, "; "))
}
