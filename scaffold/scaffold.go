// Package scaffold generates the missing parts of a request in an .http
// document from the endpoint that serves it.
package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/masnyjimmy/srihc/classify"
	"github.com/masnyjimmy/srihc/config"
	"github.com/masnyjimmy/srihc/httpfile"
	"github.com/masnyjimmy/srihc/resolve"
	"github.com/masnyjimmy/srihc/synth"
)

var (
	ErrNotWritable    = errors.New("document is read-only")
	ErrNotApplicable  = errors.New("caret is not in the blank area after a request without body")
	ErrResolutionMiss = errors.New("unable to resolve endpoint")
)

// IsSkip reports whether err means "generate nothing" rather than a failure.
func IsSkip(err error) bool {
	return errors.Is(err, ErrNotWritable) ||
		errors.Is(err, ErrNotApplicable) ||
		errors.Is(err, ErrResolutionMiss)
}

type Options struct {
	Classify classify.Options
	Synth    synth.Options
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Classify: classify.OptionsFromConfig(cfg),
		Synth:    synth.OptionsFromConfig(cfg),
	}
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

type Plan struct {
	Request  httpfile.Request
	Endpoint resolve.Endpoint
	Params   []classify.Descriptor
	Result   synth.Result

	// BodyTypeResolved is false when a body parameter exists but its type
	// had no known fields.
	BodyTypeResolved bool

	Edits []httpfile.Edit
}

// Enabled reports whether generation applies at caret: inside a request
// block that has no body, somewhere after its headers.
func Enabled(doc *httpfile.Document, caret int) bool {
	if caret < 0 || caret > len(doc.Text) {
		return false
	}

	r, ok := doc.RequestAt(caret)
	if !ok || r.HasBody || caret < r.HeadersEnd {
		return false
	}

	return strings.TrimSpace(doc.Text[r.HeadersEnd:caret]) == ""
}

func existingHeaders(r *httpfile.Request) []synth.Header {
	out := make([]synth.Header, len(r.Headers))
	for idx, h := range r.Headers {
		out[idx] = synth.Header{Name: h.Name, Value: h.Value}
	}
	return out
}

// PlanEdits places the synthesized fragments: the query string right after
// the request target, new headers after the last header (or the request
// line), body and form at the caret. Inserted lines follow the line break
// of text.
func PlanEdits(text string, r *httpfile.Request, caret int, res synth.Result) []httpfile.Edit {
	edits := make([]httpfile.Edit, 0, 4)
	nl := httpfile.LineBreak(text)

	if res.Query != "" {
		query := res.Query
		if r.HasQuery() {
			query = "&" + strings.TrimPrefix(query, "?")
		}
		edits = append(edits, httpfile.Edit{Offset: r.TargetSpan.End, Text: query})
	}

	for _, h := range synth.Missing(existingHeaders(r), res.Headers) {
		edits = append(edits, httpfile.Edit{Offset: r.HeadersEnd, Text: nl + h.String()})
	}

	parts := make([]string, 0, 2)
	for _, part := range []string{res.Body, res.Form} {
		if part != "" {
			parts = append(parts, strings.ReplaceAll(part, "\n", nl))
		}
	}

	if len(parts) != 0 {
		// the body needs a blank line between it and the headers
		breaks := strings.Count(text[r.HeadersEnd:caret], "\n")
		prefix := strings.Repeat(nl, max(0, 2-breaks))
		edits = append(edits, httpfile.Edit{Offset: caret, Text: prefix + strings.Join(parts, nl)})
	}

	return edits
}

// Synthesize resolves method and path and renders the fragments for the
// endpoint, without a document to place them in.
func Synthesize(resolver resolve.Resolver, method, path string, opts Options) (*Plan, error) {
	endpoint, err := resolver.Resolve(method, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResolutionMiss, err)
	}

	plan := &Plan{
		Endpoint:         endpoint,
		Params:           classify.Classify(endpoint.Params, opts.Classify),
		BodyTypeResolved: true,
	}

	req := synth.Request{Params: plan.Params}

	if body, ok := synth.BodyParam(plan.Params); ok {
		if fields, ok := resolver.Fields(body.TypeName); ok {
			req.BodyFields = make([]synth.Field, len(fields))
			for idx, name := range fields {
				req.BodyFields[idx] = synth.Field{Name: name}
			}
		} else {
			plan.BodyTypeResolved = false
		}
	}

	plan.Result = synth.Synthesize(req, opts.Synth)

	return plan, nil
}

// Generate resolves the request under caret and plans the insertions. It
// never modifies doc.
func Generate(doc *httpfile.Document, caret int, resolver resolve.Resolver, opts Options) (*Plan, error) {
	if doc.ReadOnly {
		return nil, ErrNotWritable
	}

	if !Enabled(doc, caret) {
		return nil, ErrNotApplicable
	}

	r, _ := doc.RequestAt(caret)

	plan, err := Synthesize(resolver, r.Method, r.Path(), opts)
	if err != nil {
		return nil, err
	}

	plan.Request = *r
	plan.Edits = PlanEdits(doc.Text, r, caret, plan.Result)

	return plan, nil
}

// Run generates and applies the plan, returning the new document text.
func Run(doc *httpfile.Document, caret int, resolver resolve.Resolver, opts Options) (string, *Plan, error) {
	plan, err := Generate(doc, caret, resolver, opts)
	if err != nil {
		return "", nil, err
	}

	text, err := httpfile.Apply(doc.Text, plan.Edits)
	if err != nil {
		return "", nil, err
	}

	return text, plan, nil
}
