// Package utils contains small helpers shared by the CLIs.
package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GetSchemaFromConfig reflects a JSON schema from any config struct. Used by
// the CLIs to publish the shape of their configuration documents.
func GetSchemaFromConfig(config any) (string, error) {
	schema := jsonschema.Reflect(config)

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
