// Package synth renders the request fragments for classified parameters:
// headers, a JSON body skeleton, a query string and a multipart section.
package synth

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/masnyjimmy/srihc/classify"
	"github.com/masnyjimmy/srihc/config"
)

type Field struct {
	Name string
}

// Request is the input of one synthesis. BodyFields is nil when the body
// type could not be resolved.
type Request struct {
	Params     []classify.Descriptor
	BodyFields []Field
}

type Result struct {
	Headers []Header `json:"headers,omitempty"`
	Body    string   `json:"body,omitempty"`
	Query   string   `json:"query,omitempty"`
	Form    string   `json:"form,omitempty"`
}

func (r Result) Empty() bool {
	return len(r.Headers) == 0 && r.Body == "" && r.Query == "" && r.Form == ""
}

type Options struct {
	Boundary    string
	FieldNaming string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Boundary:    cfg.Boundary,
		FieldNaming: cfg.FieldNaming,
	}
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

func (o Options) fieldName(name string) string {
	switch o.FieldNaming {
	case "snake":
		return strcase.ToSnake(name)
	case "kebab":
		return strcase.ToKebab(name)
	case "lowerCamel":
		return strcase.ToLowerCamel(name)
	case "upperCamel":
		return strcase.ToCamel(name)
	default:
		return name
	}
}

func (o Options) boundary() string {
	if o.Boundary == "" {
		return config.DefaultBoundary
	}
	return o.Boundary
}

// Skeleton renders a flat JSON object with every field left empty.
func Skeleton(fields []Field, opts Options) string {
	var b strings.Builder
	b.WriteString("{\n")
	for idx, field := range fields {
		b.WriteString("\t\"")
		b.WriteString(opts.fieldName(field.Name))
		b.WriteString("\": ")
		if idx != len(fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// QueryString renders ?a=&b= for the given parameters, or nothing.
func QueryString(params []classify.Descriptor) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for idx, p := range params {
		parts[idx] = p.QueryName() + "="
	}
	return "?" + strings.Join(parts, "&")
}

func formName(d classify.Descriptor) string {
	text := d.ValueText
	if d.HasValueText && len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text
	}
	return `"` + d.QueryName() + `"`
}

// FormSection renders the multipart block for a file parameter.
func FormSection(d classify.Descriptor, opts Options) string {
	return "--" + opts.boundary() + "\n" +
		"Content-Disposition: form-data; name=" + formName(d) + "; filename=\"\"\n" +
		"<"
}

func FormHeader(opts Options) Header {
	return Header{Name: ContentType, Value: MediaMultipart + "; boundary=" + opts.boundary()}
}

func JSONHeader() Header {
	return Header{Name: ContentType, Value: MediaJSON}
}

// BodyParam returns the first body-bound descriptor.
func BodyParam(params []classify.Descriptor) (classify.Descriptor, bool) {
	for _, p := range params {
		if p.Kind == classify.KindBody {
			return p, true
		}
	}
	return classify.Descriptor{}, false
}

// MultipartParam returns the index of the first multipart descriptor, or -1.
func MultipartParam(params []classify.Descriptor) int {
	for idx, p := range params {
		if p.Kind == classify.KindQuery && p.Multipart {
			return idx
		}
	}
	return -1
}

// Synthesize renders the body, then the query string, then the form section.
// Headers are listed in that same order.
func Synthesize(req Request, opts Options) Result {
	var out Result

	if _, ok := BodyParam(req.Params); ok {
		out.Headers = append(out.Headers, JSONHeader())
		out.Body = Skeleton(req.BodyFields, opts)
	}

	multipart := MultipartParam(req.Params)

	query := make([]classify.Descriptor, 0, len(req.Params))
	for idx, p := range req.Params {
		if p.Kind == classify.KindQuery && idx != multipart {
			query = append(query, p)
		}
	}
	out.Query = QueryString(query)

	if multipart != -1 {
		out.Headers = append(out.Headers, FormHeader(opts))
		out.Form = FormSection(req.Params[multipart], opts)
	}

	return out
}
