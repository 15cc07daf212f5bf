package definitions

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// workflowSchema constrains the structural shape of a definition document.
// Step params stay free-form: their values may be placeholder expressions
// that only resolve at execution time.
const workflowSchema = `{
	"type": "object",
	"properties": {
		"name": {"type": "string", "minLength": 1},
		"description": {"type": "string"},
		"triggers": {
			"type": "array",
			"items": {"type": "string"}
		},
		"steps": {
			"type": "array",
			"minItems": 1,
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string", "minLength": 1},
					"tool": {"type": "string", "minLength": 1},
					"params": {"type": "object"},
					"conditions": {
						"type": "array",
						"items": {"type": "string"}
					}
				},
				"required": ["name", "tool"]
			}
		}
	},
	"required": ["steps"]
}`

var schemaLoader = gojsonschema.NewStringLoader(workflowSchema)

func validateDocument(doc map[string]any) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	if result.Valid() {
		return nil
	}

	details := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		details = append(details, desc.String())
	}

	return fmt.Errorf("invalid workflow definition: %s", strings.Join(details, "; "))
}
