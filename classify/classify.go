// Package classify sorts the parameters of a handler method into query,
// body and multipart file parameters.
package classify

import (
	"slices"
	"strings"

	"github.com/masnyjimmy/srihc/compilation"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/docs"
)

type Kind int

const (
	KindNone Kind = iota
	KindQuery
	KindBody
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindBody:
		return "body"
	default:
		return "none"
	}
}

type Descriptor struct {
	Name     string
	TypeName string
	Kind     Kind

	// Multipart marks a query-bound file upload parameter.
	Multipart bool

	Override    string
	HasOverride bool

	// ValueText is the value attribute exactly as written, quotes included.
	ValueText    string
	HasValueText bool
}

// QueryName is the name the parameter is sent under.
func (d Descriptor) QueryName() string {
	if d.HasOverride {
		return d.Override
	}
	return d.Name
}

type Options struct {
	QueryAnnotation string
	BodyAnnotation  string
	FileTypes       []string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		QueryAnnotation: cfg.QueryAnnotation,
		BodyAnnotation:  cfg.BodyAnnotation,
		FileTypes:       cfg.FileTypes,
	}
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// Unwrap strips one leading and one trailing double quote.
func Unwrap(text string) string {
	text = strings.TrimPrefix(text, `"`)
	return strings.TrimSuffix(text, `"`)
}

func (o Options) kindOf(annotation string) Kind {
	switch annotation {
	case o.QueryAnnotation:
		return KindQuery
	case o.BodyAnnotation:
		return KindBody
	}
	return KindNone
}

// IsFileType reports whether typeName names a single file upload. Arrays,
// collections and unparseable names are not file types.
func (o Options) IsFileType(typeName string) bool {
	expr, err := compilation.ParseTypeExpr(typeName)
	if err != nil || expr.IsArray() || len(expr.Args) != 0 {
		return false
	}
	return slices.Contains(o.FileTypes, expr.Name) || slices.Contains(o.FileTypes, expr.SimpleName())
}

func (o Options) classifyOne(param docs.RawParameter) (Descriptor, bool) {
	for _, annotation := range param.Annotations {
		kind := o.kindOf(annotation.Name)
		if kind == KindNone {
			continue
		}

		out := Descriptor{
			Name:     param.Name,
			TypeName: param.Type,
			Kind:     kind,
		}

		if text, ok := annotation.Attributes.Lookup("value"); ok {
			out.ValueText = text
			out.HasValueText = true
		}

		if kind == KindQuery {
			if out.HasValueText {
				out.Override = Unwrap(out.ValueText)
				out.HasOverride = true
			}
			out.Multipart = o.IsFileType(param.Type)
		}

		return out, true
	}
	return Descriptor{}, false
}

// Classify keeps the parameters bound by the query or body annotation, in
// declaration order. Everything else is dropped.
func Classify(params []docs.RawParameter, opts Options) []Descriptor {
	out := make([]Descriptor, 0, len(params))
	for _, param := range params {
		if d, ok := opts.classifyOne(param); ok {
			out = append(out, d)
		}
	}
	return out
}
