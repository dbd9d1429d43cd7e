// Package validation checks endpoint metadata files against the embedded
// JSON schema before they are decoded.
package validation

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaBytes []byte

var schema *jsonschema.Schema

const schemaURL = "srihc-metadata.json"

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.DefaultDraft(jsonschema.Draft2020)

	object, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		panic(err)
	}

	if err := compiler.AddResource(schemaURL, object); err != nil {
		panic(err)
	}

	schema = compiler.MustCompile(schemaURL)
}

// Validate validates a JSON document.
func Validate(documentBytes []byte) error {
	document, err := jsonschema.UnmarshalJSON(bytes.NewReader(documentBytes))
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	return schema.Validate(document)
}

// ValidateYAML converts a YAML document to JSON and validates it.
func ValidateYAML(documentBytes []byte) error {
	jsonBytes, err := yaml.YAMLToJSON(documentBytes)
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}

	return Validate(jsonBytes)
}
