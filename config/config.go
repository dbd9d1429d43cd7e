// Package config loads generator settings: which annotations bind query and
// body parameters, which types are file uploads, and how skeletons are
// rendered.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const (
	DefaultQueryAnnotation = "org.springframework.web.bind.annotation.RequestParam"
	DefaultBodyAnnotation  = "org.springframework.web.bind.annotation.RequestBody"
	DefaultBoundary        = "boundary"
	DefaultFileName        = ".srihc.yaml"
)

type Config struct {
	QueryAnnotation string   `yaml:"queryAnnotation" validate:"required"`
	BodyAnnotation  string   `yaml:"bodyAnnotation" validate:"required,nefield=QueryAnnotation"`
	FileTypes       []string `yaml:"fileTypes" validate:"required,min=1,dive,required"`
	Boundary        string   `yaml:"boundary" validate:"required,printascii,excludesall= \t"`
	FieldNaming     string   `yaml:"fieldNaming" validate:"oneof=none snake kebab lowerCamel upperCamel"`
	ContextPath     string   `yaml:"contextPath,omitempty" validate:"omitempty,startswith=/"`

	Server ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr" validate:"required"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,required"`
	BasePath       string   `yaml:"basePath" validate:"startswith=/"`
}

func Default() *Config {
	return &Config{
		QueryAnnotation: DefaultQueryAnnotation,
		BodyAnnotation:  DefaultBodyAnnotation,
		FileTypes: []string{
			"MultipartFile",
			"org.springframework.web.multipart.MultipartFile",
		},
		Boundary:    DefaultBoundary,
		FieldNaming: "none",
		Server: ServerConfig{
			Addr:           "localhost:8080",
			AllowedOrigins: []string{"*"},
			BasePath:       "/",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set, the defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}
