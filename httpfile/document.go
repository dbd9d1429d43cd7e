// Package httpfile parses .http request files far enough to locate request
// lines, targets and header fields by offset, and applies text insertions.
package httpfile

import (
	"regexp"
	"strings"
)

type Span struct {
	Start int
	End   int
}

func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset <= s.End
}

type HeaderField struct {
	Name  string
	Value string
	Span  Span
}

type Request struct {
	// Span covers the block from the request line to the next separator.
	Span Span
	// Separated is set when the block ends at a ### line rather than at the
	// end of the text.
	Separated bool

	Method     string
	Target     string
	TargetSpan Span
	Version    string

	Headers []HeaderField
	// HeadersEnd is the end of the last header line, or of the request line
	// when there are no headers.
	HeadersEnd int

	Body    Span
	HasBody bool
}

// Contains reports whether offset lies in the block. The start of a
// closing separator line belongs to the separator.
func (r *Request) Contains(offset int) bool {
	if r.Separated {
		return offset >= r.Span.Start && offset < r.Span.End
	}
	return r.Span.Contains(offset)
}

type Document struct {
	Text     string
	ReadOnly bool
	Requests []Request

	// LineBreak is "\r\n" when the text uses CRLF line endings, "\n"
	// otherwise.
	LineBreak string
}

// LineBreak returns the line break used by text.
func LineBreak(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx > 0 && text[idx-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

// RequestAt returns the request whose block contains offset.
func (d *Document) RequestAt(offset int) (*Request, bool) {
	for idx := range d.Requests {
		if d.Requests[idx].Contains(offset) {
			return &d.Requests[idx], true
		}
	}
	return nil, false
}

// LineColumnOffset converts a 1-based line and column into an offset.
func (d *Document) LineColumnOffset(line, column int) (int, bool) {
	if line < 1 || column < 1 {
		return 0, false
	}
	offset := 0
	for current := 1; current < line; current++ {
		next := strings.IndexByte(d.Text[offset:], '\n')
		if next == -1 {
			return 0, false
		}
		offset += next + 1
	}
	lineEnd := strings.IndexByte(d.Text[offset:], '\n')
	if lineEnd == -1 {
		lineEnd = len(d.Text) - offset
	}
	if column-1 > lineEnd {
		return 0, false
	}
	return offset + column - 1, true
}

var variableExpr = regexp.MustCompile(`\{\{[^}]*\}\}`)

// Path returns the absolute path of the request target with {{variables}}
// substituted by empty strings and without scheme, host, query or fragment.
func (r *Request) Path() string {
	target := variableExpr.ReplaceAllString(r.Target, "")

	if idx := strings.Index(target, "://"); idx != -1 {
		target = target[idx+3:]
		if slash := strings.Index(target, "/"); slash != -1 {
			target = target[slash:]
		} else {
			target = "/"
		}
	} else if !strings.HasPrefix(target, "/") {
		if slash := strings.Index(target, "/"); slash != -1 {
			target = target[slash:]
		} else {
			target = "/"
		}
	}

	if idx := strings.IndexAny(target, "?#"); idx != -1 {
		target = target[:idx]
	}

	if target == "" {
		return "/"
	}
	return target
}

// HasQuery reports whether the target already carries a query string.
func (r *Request) HasQuery() bool {
	return strings.Contains(variableExpr.ReplaceAllString(r.Target, ""), "?")
}
