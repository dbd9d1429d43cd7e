package compilation

import (
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/masnyjimmy/srihc/docs"
)

func mustDocument(t *testing.T, src string) *docs.Document {
	t.Helper()
	var doc docs.Document
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return &doc
}

func TestCompileFlattensPaths(t *testing.T) {
	doc := mustDocument(t, `
contextPath: /api
paths:
  /users:
    get:
      handler: UserController#list
    post:
      handler: UserController#create
    /{id}:
      get:
        handler: UserController#get
`)

	catalog, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var got []string
	for _, r := range catalog.Routes {
		got = append(got, r.Method+" "+r.Template.Pattern+" "+r.Handler)
	}

	want := []string{
		"GET /api/users UserController#list",
		"POST /api/users UserController#create",
		"GET /api/users/{id} UserController#get",
	}

	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("routes:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestCompileWithContextPathOverride(t *testing.T) {
	doc := mustDocument(t, "contextPath: /api\npaths:\n  /users:\n    get: {}\n")

	catalog, err := CompileWithContextPath(doc, "/v2")
	if err != nil {
		t.Fatal(err)
	}
	if got := catalog.Routes[0].Template.Pattern; got != "/v2/users" {
		t.Errorf("pattern = %q, want /v2/users", got)
	}
}

func TestCompileFlattensTypes(t *testing.T) {
	doc := mustDocument(t, `
types:
  com.acme.Base:
    fields: [id, createdAt]
  com.acme.UserForm:
    extends: com.acme.Base
    fields: [name, id]
`)

	catalog, err := Compile(doc)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	info, ok := catalog.Types.Lookup("UserForm")
	if !ok {
		t.Fatal("UserForm not found by simple name")
	}
	if got := strings.Join(info.Fields, ","); got != "name,id,createdAt" {
		t.Errorf("fields = %v, want name,id,createdAt", got)
	}

	if _, ok := catalog.Types.Lookup("com.acme.Base"); !ok {
		t.Error("Base not found by qualified name")
	}
	if _, ok := catalog.Types.Lookup("Missing"); ok {
		t.Error("Missing should not resolve")
	}
}

func TestTypesLookupAmbiguousSimpleName(t *testing.T) {
	types := Types{
		"a.User": {Name: "a.User"},
		"b.User": {Name: "b.User"},
	}
	if _, ok := types.Lookup("User"); ok {
		t.Error("ambiguous simple name should not resolve")
	}
	if _, ok := types.Lookup("a.User"); !ok {
		t.Error("qualified name should resolve")
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"cycle", "types:\n  A:\n    extends: B\n  B:\n    extends: A\n"},
		{"unknown super", "types:\n  A:\n    extends: Missing\n"},
		{"bad template", "paths:\n  \"/users/{id\":\n    get: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(mustDocument(t, tt.src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
