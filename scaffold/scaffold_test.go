package scaffold

import (
	"errors"
	"testing"

	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/docs"
	"github.com/masnyjimmy/srihc/httpfile"
	"github.com/masnyjimmy/srihc/resolve"
)

type fakeResolver struct {
	endpoints map[string]resolve.Endpoint
	types     map[string][]string
}

func (f fakeResolver) Resolve(method, path string) (resolve.Endpoint, error) {
	ep, ok := f.endpoints[method+" "+path]
	if !ok {
		return resolve.Endpoint{}, resolve.ErrNoMatch
	}
	return ep, nil
}

func (f fakeResolver) Fields(typeExpr string) ([]string, bool) {
	fields, ok := f.types[typeExpr]
	return fields, ok
}

func param(name, typeName, annotation string, attrs ...docs.Attribute) docs.RawParameter {
	return docs.RawParameter{
		Name:        name,
		Type:        typeName,
		Annotations: []docs.Annotation{{Name: annotation, Attributes: attrs}},
	}
}

var resolver = fakeResolver{
	endpoints: map[string]resolve.Endpoint{
		"POST /api/users": {
			Method:  "POST",
			Handler: "UserController#create",
			Params: []docs.RawParameter{
				param("form", "UserForm", config.DefaultBodyAnnotation),
				param("page", "int", config.DefaultQueryAnnotation),
				param("file", "MultipartFile", config.DefaultQueryAnnotation, docs.Attribute{Name: "value", Text: `"avatar"`}),
			},
		},
		"PUT /api/users": {
			Method:  "PUT",
			Handler: "UserController#update",
			Params: []docs.RawParameter{
				param("form", "Unknown", config.DefaultBodyAnnotation),
			},
		},
		"GET /api/search": {
			Method:  "GET",
			Handler: "SearchController#search",
			Params: []docs.RawParameter{
				param("q", "String", config.DefaultQueryAnnotation),
				param("size", "int", config.DefaultQueryAnnotation, docs.Attribute{Name: "value", Text: `"page"`}),
				{Name: "principal", Type: "Principal"},
			},
		},
		"GET /api/none": {
			Method:  "GET",
			Handler: "NoneController#none",
		},
	},
	types: map[string][]string{
		"UserForm": {"id", "name"},
	},
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		caret int // -1 means end of text
		want  string
	}{
		{
			name:  "body query and form",
			text:  "POST http://localhost/api/users\nAccept: */*\n\n",
			caret: -1,
			want: "POST http://localhost/api/users?page=\nAccept: */*\n" +
				"Content-Type: application/json\n" +
				"Content-Type: multipart/form-data; boundary=boundary\n\n" +
				"{\n\t\"id\": ,\n\t\"name\": \n}\n" +
				"--boundary\nContent-Disposition: form-data; name=\"avatar\"; filename=\"\"\n<",
		},
		{
			name:  "existing json header is kept",
			text:  "POST /api/users\ncontent-type: x\nContent-Type: Application/JSON; charset=utf-8\n\n",
			caret: -1,
			want: "POST /api/users?page=\ncontent-type: x\nContent-Type: Application/JSON; charset=utf-8\n" +
				"Content-Type: multipart/form-data; boundary=boundary\n\n" +
				"{\n\t\"id\": ,\n\t\"name\": \n}\n" +
				"--boundary\nContent-Disposition: form-data; name=\"avatar\"; filename=\"\"\n<",
		},
		{
			name:  "query only",
			text:  "GET {{host}}/api/search HTTP/1.1",
			caret: -1,
			want:  "GET {{host}}/api/search?q=&page= HTTP/1.1",
		},
		{
			name:  "existing query",
			text:  "GET /api/search?x=1\n",
			caret: -1,
			want:  "GET /api/search?x=1&q=&page=\n",
		},
		{
			name:  "unresolved body type on the request line",
			text:  "PUT /api/users",
			caret: -1,
			want:  "PUT /api/users\nContent-Type: application/json\n\n{\n}",
		},
		{
			name:  "caret on the line after headers",
			text:  "PUT /api/users\nAccept: */*\n",
			caret: -1,
			want:  "PUT /api/users\nAccept: */*\nContent-Type: application/json\n\n{\n}",
		},
		{
			name:  "crlf line endings",
			text:  "PUT /api/users\r\nAccept: */*\r\n\r\n",
			caret: -1,
			want:  "PUT /api/users\r\nAccept: */*\r\nContent-Type: application/json\r\n\r\n{\r\n}",
		},
		{
			name:  "crlf form section",
			text:  "POST /api/users\r\n\r\n",
			caret: -1,
			want: "POST /api/users?page=\r\n" +
				"Content-Type: application/json\r\n" +
				"Content-Type: multipart/form-data; boundary=boundary\r\n\r\n" +
				"{\r\n\t\"id\": ,\r\n\t\"name\": \r\n}\r\n" +
				"--boundary\r\nContent-Disposition: form-data; name=\"avatar\"; filename=\"\"\r\n<",
		},
		{
			name:  "nothing to generate",
			text:  "GET /api/none\n\n",
			caret: -1,
			want:  "GET /api/none\n\n",
		},
		{
			name:  "second block",
			text:  "GET /api/none\n\n###\nGET /api/search\n\n###\n",
			caret: len("GET /api/none\n\n###\nGET /api/search\n"),
			want:  "GET /api/none\n\n###\nGET /api/search?q=&page=\n\n###\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caret := tt.caret
			if caret == -1 {
				caret = len(tt.text)
			}

			got, _, err := Run(httpfile.Parse(tt.text), caret, resolver, DefaultOptions())
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got != tt.want {
				t.Errorf("Run() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestGeneratePlan(t *testing.T) {
	doc := httpfile.Parse("PUT /api/users\n\n")
	plan, err := Generate(doc, len(doc.Text), resolver, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if plan.BodyTypeResolved {
		t.Error("BodyTypeResolved should be false for an unknown type")
	}
	if plan.Endpoint.Handler != "UserController#update" {
		t.Errorf("Handler = %q", plan.Endpoint.Handler)
	}
	if len(plan.Params) != 1 {
		t.Errorf("Params = %+v", plan.Params)
	}
}

func TestGenerateSkips(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		readOnly bool
		caret    int
		want     error
	}{
		{"read only", "POST /api/users\n\n", true, 17, ErrNotWritable},
		{"read only checked first", "POST /api/users\n{}\n", true, 0, ErrNotWritable},
		{"request has a body", "POST /api/users\n\n{}\n", false, 16, ErrNotApplicable},
		{"caret inside request line", "POST /api/users\n\n", false, 3, ErrNotApplicable},
		{"caret before any request", "# comment\nPOST /api/users\n\n", false, 2, ErrNotApplicable},
		{"caret out of range", "POST /api/users\n\n", false, 99, ErrNotApplicable},
		{"unknown endpoint", "GET /api/orders\n\n", false, 17, ErrResolutionMiss},
		{"caret at start of separator line", "PUT /api/users\n\n###\nGET /api/search\n", false, 16, ErrNotApplicable},
		{"caret on separator line", "PUT /api/users\n\n###\nGET /api/search\n", false, 18, ErrNotApplicable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := httpfile.Parse(tt.text)
			doc.ReadOnly = tt.readOnly

			_, err := Generate(doc, tt.caret, resolver, DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.want)
			}
			if !IsSkip(err) {
				t.Errorf("IsSkip(%v) = false", err)
			}
		})
	}
}

func TestResolutionMissWrapsCause(t *testing.T) {
	doc := httpfile.Parse("GET /api/orders\n\n")
	_, err := Generate(doc, len(doc.Text), resolver, DefaultOptions())
	if !errors.Is(err, resolve.ErrNoMatch) {
		t.Errorf("error %v should wrap resolve.ErrNoMatch", err)
	}
}

func TestIsSkip(t *testing.T) {
	if IsSkip(errors.New("disk full")) {
		t.Error("unrelated errors are not skips")
	}
	if IsSkip(nil) {
		t.Error("nil is not a skip")
	}
}

func TestSynthesizeWithoutDocument(t *testing.T) {
	plan, err := Synthesize(resolver, "GET", "/api/search", DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if plan.Result.Query != "?q=&page=" {
		t.Errorf("Query = %q", plan.Result.Query)
	}
	if len(plan.Edits) != 0 {
		t.Errorf("Edits = %+v, want none", plan.Edits)
	}

	if _, err := Synthesize(resolver, "GET", "/nope", DefaultOptions()); !errors.Is(err, ErrResolutionMiss) {
		t.Errorf("error = %v, want ErrResolutionMiss", err)
	}
}
