// Package metadata reads endpoint descriptions from disk and compiles them
// into a resolver.
package metadata

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/srihc/compilation"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/docs"
	"github.com/masnyjimmy/srihc/openapi"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/validation"
)

type Format string

const (
	FormatAuto     Format = "auto"
	FormatMetadata Format = "metadata"
	FormatOpenAPI  Format = "openapi"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAuto, FormatMetadata, FormatOpenAPI:
		return f, nil
	case "":
		return FormatAuto, nil
	}
	return "", fmt.Errorf("unknown metadata format %q (use auto, metadata or openapi)", s)
}

func detect(bytes []byte) Format {
	var probe struct {
		OpenAPI string `yaml:"openapi"`
	}
	if err := yaml.Unmarshal(bytes, &probe); err == nil && probe.OpenAPI != "" {
		return FormatOpenAPI
	}
	return FormatMetadata
}

// Decode validates and parses a metadata document, or imports an OpenAPI
// one.
func Decode(bytes []byte, format Format, cfg *config.Config) (*docs.Document, error) {
	if format == FormatAuto {
		format = detect(bytes)
	}

	if format == FormatOpenAPI {
		return openapi.Import(bytes, openapi.OptionsFromConfig(cfg))
	}

	if err := validation.ValidateYAML(bytes); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	var document docs.Document
	if err := yaml.Unmarshal(bytes, &document); err != nil {
		return nil, fmt.Errorf("unable to parse document: %w", err)
	}

	return &document, nil
}

/*
When loading
1. read bytes
2. validate schema (or import OpenAPI)
3. unmarshal
4. compile
*/
func Load(filename string, format Format, cfg *config.Config) (*resolve.Catalog, error) {
	bytes, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to read file: %w", err)
	}

	document, err := Decode(bytes, format, cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := compilation.CompileWithContextPath(document, cfg.ContextPath)
	if err != nil {
		return nil, fmt.Errorf("compilation error: %w", err)
	}

	return resolve.New(catalog), nil
}
