package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/srihc/compilation"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/docs"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/scaffold"
)

const metadata = `
paths:
  /search:
    get:
      handler: SearchController#search
      params:
        - name: q
          type: String
          annotations: [org.springframework.web.bind.annotation.RequestParam]
`

func newResolver(t *testing.T) *resolve.Catalog {
	t.Helper()
	var doc docs.Document
	if err := yaml.Unmarshal([]byte(metadata), &doc); err != nil {
		t.Fatal(err)
	}
	catalog, err := compilation.Compile(&doc)
	if err != nil {
		t.Fatal(err)
	}
	return resolve.New(catalog)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return file
}

func TestGenerateFile(t *testing.T) {
	resolver := newResolver(t)
	opts := scaffold.DefaultOptions()

	tests := []struct {
		name   string
		text   string
		pos    caret
		dryRun bool
		code   int
		want   string
	}{
		{
			name: "writes query string",
			text: "GET /search\n\n",
			pos:  caret{offset: 13},
			want: "GET /search?q=\n\n",
		},
		{
			name: "line and column",
			text: "GET /search\n\n",
			pos:  caret{offset: -1, line: 2, column: 1},
			want: "GET /search?q=\n\n",
		},
		{
			name:   "dry run leaves file alone",
			text:   "GET /search\n\n",
			pos:    caret{offset: 13},
			dryRun: true,
			want:   "GET /search\n\n",
		},
		{
			name: "skip is not an error",
			text: "GET /other\n\n",
			pos:  caret{offset: 12},
			want: "GET /other\n\n",
		},
		{
			name: "missing position",
			text: "GET /search\n\n",
			pos:  caret{offset: -1},
			code: exitInput,
			want: "GET /search\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeFile(t, "api.http", tt.text)

			if code := GenerateFile(file, tt.pos, resolver, opts, tt.dryRun); code != tt.code {
				t.Fatalf("GenerateFile() = %d, want %d", code, tt.code)
			}

			got, _ := os.ReadFile(file)
			if string(got) != tt.want {
				t.Errorf("file = %q, want %q", got, tt.want)
			}
		})
	}

	if code := GenerateFile(filepath.Join(t.TempDir(), "none.http"), caret{offset: 0}, resolver, opts, false); code != exitInput {
		t.Errorf("missing file: GenerateFile() = %d, want %d", code, exitInput)
	}
}

func TestRender(t *testing.T) {
	plan, err := scaffold.Synthesize(newResolver(t), "", "/search", scaffold.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if got := render("", "/search", plan); got != "GET /search?q=\n" {
		t.Errorf("render() = %q", got)
	}
}

const openAPI = `
openapi: 3.0.3
info: {title: search, version: "1"}
paths:
  /search:
    get:
      operationId: search
      parameters:
        - name: q
          in: query
          schema: {type: string}
`

func TestImportFile(t *testing.T) {
	input := writeFile(t, "openapi.yaml", openAPI)
	output := filepath.Join(filepath.Dir(input), "endpoints.yaml")

	if code := ImportFile(output, input, config.Default()); code != exitOK {
		t.Fatalf("ImportFile() = %d", code)
	}

	bytes, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	var doc docs.Document
	if err := yaml.Unmarshal(bytes, &doc); err != nil {
		t.Fatalf("output is not metadata: %v\n%s", err, bytes)
	}

	get := doc.Paths["/search"].Get
	if get == nil || get.Handler != "search" {
		t.Fatalf("unexpected document:\n%s", bytes)
	}
	if len(get.Params) != 1 || !strings.HasSuffix(get.Params[0].Annotations[0].Name, "RequestParam") {
		t.Errorf("Params = %+v", get.Params)
	}
}
