package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "srihc.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingOptional(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Boundary != DefaultBoundary {
		t.Errorf("Boundary = %q, want %q", cfg.Boundary, DefaultBoundary)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), false); err == nil {
		t.Fatal("expected error for missing required config")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
fieldNaming: snake
fileTypes: [FilePart]
server:
  addr: ":9000"
`)
	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FieldNaming != "snake" {
		t.Errorf("FieldNaming = %q", cfg.FieldNaming)
	}
	if len(cfg.FileTypes) != 1 || cfg.FileTypes[0] != "FilePart" {
		t.Errorf("FileTypes = %v", cfg.FileTypes)
	}
	if cfg.QueryAnnotation != DefaultQueryAnnotation {
		t.Errorf("QueryAnnotation = %q, want default", cfg.QueryAnnotation)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown naming", "fieldNaming: shouting\n"},
		{"same annotations", "queryAnnotation: a.B\nbodyAnnotation: a.B\n"},
		{"boundary with space", "boundary: \"a b\"\n"},
		{"relative context path", "contextPath: api\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content), false)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validator.ValidationErrors, got %T: %v", err, err)
			}
		})
	}
}
