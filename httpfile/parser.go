package httpfile

import (
	"regexp"
	"strings"
	"unicode"
)

var headerNameExpr = regexp.MustCompile("^[!#$%&'*+\\-.^_`|~0-9A-Za-z]+$")

var methods = map[string]bool{
	"GET":     true,
	"POST":    true,
	"PUT":     true,
	"PATCH":   true,
	"DELETE":  true,
	"HEAD":    true,
	"OPTIONS": true,
	"TRACE":   true,
	"CONNECT": true,
}

type line struct {
	start int
	end   int // excluding the line break
	text  string
}

func splitLines(text string) []line {
	out := make([]line, 0)
	start := 0
	for start <= len(text) {
		next := strings.IndexByte(text[start:], '\n')
		end := len(text)
		if next != -1 {
			end = start + next
		}
		content := strings.TrimSuffix(text[start:end], "\r")
		out = append(out, line{start: start, end: start + len(content), text: content})
		if next == -1 {
			break
		}
		start = end + 1
	}
	return out
}

func isSeparator(l line) bool {
	return strings.HasPrefix(l.text, "###")
}

func isComment(l line) bool {
	trimmed := strings.TrimLeftFunc(l.text, unicode.IsSpace)
	return strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "//")
}

func isBlank(l line) bool {
	return strings.TrimSpace(l.text) == ""
}

type field struct {
	text  string
	start int
}

func fields(s string, base int) []field {
	out := make([]field, 0, 3)
	idx := 0
	for idx < len(s) {
		for idx < len(s) && (s[idx] == ' ' || s[idx] == '\t') {
			idx++
		}
		start := idx
		for idx < len(s) && s[idx] != ' ' && s[idx] != '\t' {
			idx++
		}
		if start < idx {
			out = append(out, field{text: s[start:idx], start: base + start})
		}
	}
	return out
}

func parseRequestLine(l line, r *Request) {
	parts := fields(l.text, l.start)

	if len(parts) > 1 && methods[parts[0].text] {
		r.Method = parts[0].text
		parts = parts[1:]
	} else {
		r.Method = "GET"
	}

	if len(parts) > 1 && strings.HasPrefix(parts[len(parts)-1].text, "HTTP/") {
		r.Version = parts[len(parts)-1].text
		parts = parts[:len(parts)-1]
	}

	if len(parts) == 0 {
		return
	}

	first, last := parts[0], parts[len(parts)-1]
	r.TargetSpan = Span{Start: first.start, End: last.start + len(last.text)}
	r.Target = l.text[first.start-l.start : r.TargetSpan.End-l.start]
}

func parseBlock(lines []line, end int) (Request, bool) {
	idx := 0
	for idx < len(lines) && (isBlank(lines[idx]) || isComment(lines[idx])) {
		idx++
	}
	if idx == len(lines) {
		return Request{}, false
	}

	requestLine := lines[idx]
	r := Request{
		Span:       Span{Start: requestLine.start, End: end},
		HeadersEnd: requestLine.end,
	}
	parseRequestLine(requestLine, &r)
	idx++

	for ; idx < len(lines); idx++ {
		l := lines[idx]
		if isBlank(l) {
			break
		}
		if isComment(l) {
			continue
		}
		name, value, ok := strings.Cut(l.text, ":")
		if !ok || !headerNameExpr.MatchString(name) {
			break
		}
		r.Headers = append(r.Headers, HeaderField{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
			Span:  Span{Start: l.start, End: l.end},
		})
		r.HeadersEnd = l.end
	}

	for ; idx < len(lines); idx++ {
		l := lines[idx]
		if isBlank(l) {
			continue
		}
		last := len(lines) - 1
		for isBlank(lines[last]) {
			last--
		}
		r.Body = Span{Start: l.start, End: lines[last].end}
		r.HasBody = true
		break
	}

	return r, true
}

// Parse splits text into request blocks at ### separators.
func Parse(text string) *Document {
	doc := &Document{Text: text, LineBreak: LineBreak(text)}

	var block []line
	flush := func(end int, separated bool) {
		if r, ok := parseBlock(block, end); ok {
			r.Separated = separated
			doc.Requests = append(doc.Requests, r)
		}
		block = nil
	}

	for _, l := range splitLines(text) {
		if isSeparator(l) {
			flush(l.start, true)
			continue
		}
		block = append(block, l)
	}
	flush(len(text), false)

	return doc
}
