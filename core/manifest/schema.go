package manifest

import (
	_ "embed"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

//go:embed manifest.schema.json
var schemaJSON []byte

// ValidateJSON checks serialized manifest bytes against the embedded JSON
// Schema. Build output is validated before it is written so a bad manifest
// never ships.
func ValidateJSON(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(schemaJSON)
	if err != nil {
		return fmt.Errorf("compile manifest schema: %w", err)
	}
	result := schema.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("manifest schema validation failed: %v", result.Errors)
}
