// Package openapi imports an OpenAPI 3 document as endpoint metadata, for
// projects that publish a generated API description instead of sources.
package openapi

import (
	"fmt"
	"maps"
	"mime"
	"regexp"
	"slices"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/iancoleman/strcase"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/docs"
)

const (
	pathVariableAnnotation  = "org.springframework.web.bind.annotation.PathVariable"
	requestHeaderAnnotation = "org.springframework.web.bind.annotation.RequestHeader"
	fileType                = "org.springframework.web.multipart.MultipartFile"
)

var nonWord = regexp.MustCompile(`[^A-Za-z0-9]+`)

type Options struct {
	QueryAnnotation string
	BodyAnnotation  string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		QueryAnnotation: cfg.QueryAnnotation,
		BodyAnnotation:  cfg.BodyAnnotation,
	}
}

type importer struct {
	opts Options
	out  *docs.Document
}

func refName(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}

func isBinary(s *openapi3.Schema) bool {
	return s != nil && s.Type == "string" && (s.Format == "binary" || s.Format == "base64")
}

func (i *importer) javaType(ref *openapi3.SchemaRef) string {
	if ref == nil || ref.Value == nil {
		return "Object"
	}
	if ref.Ref != "" {
		return refName(ref.Ref)
	}

	s := ref.Value
	switch s.Type {
	case "string":
		if isBinary(s) {
			return fileType
		}
		return "String"
	case "integer":
		if s.Format == "int32" {
			return "Integer"
		}
		return "Long"
	case "number":
		if s.Format == "float" {
			return "Float"
		}
		return "Double"
	case "boolean":
		return "Boolean"
	case "array":
		return "java.util.List<" + i.javaType(s.Items) + ">"
	}
	return "Object"
}

// properties collects property names, allOf members included, sorted.
func properties(s *openapi3.Schema) []string {
	if s == nil {
		return nil
	}
	names := make(map[string]bool)
	for name := range s.Properties {
		names[name] = true
	}
	for _, member := range s.AllOf {
		if member == nil {
			continue
		}
		for _, name := range properties(member.Value) {
			names[name] = true
		}
	}
	return slices.Sorted(maps.Keys(names))
}

func (i *importer) addType(name string, s *openapi3.Schema) {
	if _, ok := i.out.Types[name]; ok {
		return
	}
	i.out.Types[name] = docs.Type{Fields: properties(s)}
}

func (i *importer) annotated(name, javaName, javaType, annotation string) docs.RawParameter {
	return docs.RawParameter{
		Name: javaName,
		Type: javaType,
		Annotations: []docs.Annotation{{
			Name:       annotation,
			Attributes: docs.Attributes{{Name: "value", Text: `"` + name + `"`}},
		}},
	}
}

func (i *importer) parameter(p *openapi3.Parameter) (docs.RawParameter, bool) {
	var annotation string
	switch p.In {
	case openapi3.ParameterInQuery:
		annotation = i.opts.QueryAnnotation
	case openapi3.ParameterInPath:
		annotation = pathVariableAnnotation
	case openapi3.ParameterInHeader:
		annotation = requestHeaderAnnotation
	default:
		return docs.RawParameter{}, false
	}
	return i.annotated(p.Name, strcase.ToLowerCamel(p.Name), i.javaType(p.Schema), annotation), true
}

func mediaTypeOf(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(contentType)
	}
	return mt
}

func isJSON(mt string) bool {
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func (i *importer) requestBody(operationName string, body *openapi3.RequestBody) []docs.RawParameter {
	for _, contentType := range slices.Sorted(maps.Keys(body.Content)) {
		media := body.Content[contentType]
		if media == nil || media.Schema == nil || media.Schema.Value == nil {
			continue
		}
		schema := media.Schema

		switch mt := mediaTypeOf(contentType); {
		case isJSON(mt):
			typeName := i.javaType(schema)
			if schema.Ref == "" && schema.Value.Type == "object" {
				typeName = strcase.ToCamel(operationName) + "Body"
			}
			if schema.Value.Type == "object" || schema.Ref != "" {
				i.addType(typeName, schema.Value)
			}
			param := docs.RawParameter{
				Name:        "body",
				Type:        typeName,
				Annotations: []docs.Annotation{{Name: i.opts.BodyAnnotation}},
			}
			return []docs.RawParameter{param}

		case mt == "multipart/form-data", mt == "application/x-www-form-urlencoded":
			out := make([]docs.RawParameter, 0)
			for _, name := range properties(schema.Value) {
				prop := findProperty(schema.Value, name)
				out = append(out, i.annotated(name, strcase.ToLowerCamel(name), i.javaType(prop), i.opts.QueryAnnotation))
			}
			return out
		}
	}
	return nil
}

func findProperty(s *openapi3.Schema, name string) *openapi3.SchemaRef {
	if s == nil {
		return nil
	}
	if prop, ok := s.Properties[name]; ok {
		return prop
	}
	for _, member := range s.AllOf {
		if member == nil {
			continue
		}
		if prop := findProperty(member.Value, name); prop != nil {
			return prop
		}
	}
	return nil
}

func (i *importer) operation(path, verb string, item *openapi3.PathItem, op *openapi3.Operation) *docs.Method {
	handler := op.OperationID
	if handler == "" {
		handler = verb + " " + path
	}

	operationName := op.OperationID
	if operationName == "" {
		operationName = strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(verb)+" "+path, " "))
	}

	out := &docs.Method{Handler: handler}

	seen := make(map[string]bool)
	for _, params := range []openapi3.Parameters{op.Parameters, item.Parameters} {
		for _, ref := range params {
			if ref == nil || ref.Value == nil {
				continue
			}
			key := ref.Value.In + ":" + ref.Value.Name
			if seen[key] {
				continue
			}
			seen[key] = true
			if p, ok := i.parameter(ref.Value); ok {
				out.Params = append(out.Params, p)
			}
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		out.Params = append(out.Params, i.requestBody(operationName, op.RequestBody.Value)...)
	}

	return out
}

func (i *importer) setMethod(p *docs.Path, verb string, m *docs.Method) {
	switch verb {
	case "GET":
		p.Get = m
	case "POST":
		p.Post = m
	case "PUT":
		p.Put = m
	case "PATCH":
		p.Patch = m
	case "DELETE":
		p.Delete = m
	}
}

func (i *importer) importDocument(doc *openapi3.T) {
	if doc.Components.Schemas != nil {
		for name, ref := range doc.Components.Schemas {
			if ref != nil && ref.Value != nil {
				i.addType(name, ref.Value)
			}
		}
	}

	for path, item := range doc.Paths {
		if item == nil {
			continue
		}
		var out docs.Path
		for verb, op := range item.Operations() {
			i.setMethod(&out, verb, i.operation(path, verb, item, op))
		}
		i.out.Paths[path] = out
	}
}

// Import converts an OpenAPI 3 document (JSON or YAML) into metadata. The
// document's first server path becomes the context path.
func Import(data []byte, opts Options) (*docs.Document, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("unable to load OpenAPI document: %w", err)
	}

	out := &docs.Document{
		Types: make(docs.Types),
		Paths: make(docs.Paths),
	}

	if len(doc.Servers) != 0 && doc.Servers[0] != nil {
		out.ContextPath = serverPath(doc.Servers[0].URL)
	}

	i := &importer{opts: opts, out: out}
	i.importDocument(doc)

	return out, nil
}

func serverPath(url string) string {
	if idx := strings.Index(url, "://"); idx != -1 {
		url = url[idx+3:]
		slash := strings.Index(url, "/")
		if slash == -1 {
			return ""
		}
		url = url[slash:]
	}
	url = strings.TrimSuffix(url, "/")
	if url != "" && !strings.HasPrefix(url, "/") {
		return ""
	}
	return url
}
