package service

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

var schemaReflector = jsonschema.Reflector{
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	ExpandedStruct:            true,
}

// describeSchema serializa el JSON schema de v para pegarlo en un prompt.
func describeSchema(v any) string {
	schema := schemaReflector.Reflect(v)
	schema.Version = ""
	b, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}
