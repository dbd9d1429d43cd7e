package compilation

import (
	"fmt"
	"regexp"
	"strings"
)

// PathTemplate is a compiled request mapping pattern. It understands the
// Spring forms {name}, {name:regex}, {*name}, * and **.
type PathTemplate struct {
	Pattern   string
	Variables []string

	literals  int
	wildcards int
	regex     *regexp.Regexp
}

var variableNameExpr = regexp.MustCompile(`^\*?[A-Za-z_]\w*$`)

// readVariable reads a {...} segment starting after the opening brace and
// returns its content. Nested braces inside a regex are balanced.
func readVariable(pattern string, start int) (string, int, error) {
	depth := 1
	for idx := start; idx < len(pattern); idx++ {
		switch pattern[idx] {
		case '\\':
			idx++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return pattern[start:idx], idx + 1, nil
			}
		}
	}
	return "", 0, fmt.Errorf("} not found in %v", pattern)
}

func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	return p
}

func CompilePathTemplate(pattern string) (*PathTemplate, error) {
	pattern = NormalizePath(pattern)

	out := &PathTemplate{Pattern: pattern}

	var expr strings.Builder
	expr.WriteString("^")

	for idx := 0; idx < len(pattern); {
		switch {
		case pattern[idx] == '{':
			body, next, err := readVariable(pattern, idx+1)
			if err != nil {
				return nil, err
			}
			name, custom, hasCustom := strings.Cut(body, ":")
			if !variableNameExpr.MatchString(name) {
				return nil, fmt.Errorf("invalid variable name %q in %v", name, pattern)
			}

			switch {
			case strings.HasPrefix(name, "*"):
				name = name[1:]
				expr.WriteString("(.*)")
				out.wildcards++
			case hasCustom:
				if _, err := regexp.Compile(custom); err != nil {
					return nil, fmt.Errorf("invalid regex for variable %v in %v: %w", name, pattern, err)
				}
				expr.WriteString("(" + custom + ")")
			default:
				expr.WriteString("([^/]+)")
			}

			out.Variables = append(out.Variables, name)
			idx = next
		case strings.HasPrefix(pattern[idx:], "**"):
			expr.WriteString(".*")
			out.wildcards += 2
			idx += 2
		case pattern[idx] == '*':
			expr.WriteString("[^/]*")
			out.wildcards++
			idx++
		default:
			next := strings.IndexAny(pattern[idx:], "{*")
			if next == -1 {
				next = len(pattern)
			} else {
				next += idx
			}
			literal := pattern[idx:next]
			expr.WriteString(regexp.QuoteMeta(literal))
			out.literals += len(literal)
			idx = next
		}
	}

	expr.WriteString("$")

	regex, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to compile path %v: %w", pattern, err)
	}
	out.regex = regex

	return out, nil
}

func (p *PathTemplate) Match(requestPath string) bool {
	return p.regex.MatchString(NormalizePath(requestPath))
}

// MoreSpecific reports whether p should win over other when both match the
// same path: fewer wildcards first, then fewer variables, then more literal
// characters.
func (p *PathTemplate) MoreSpecific(other *PathTemplate) bool {
	if p.wildcards != other.wildcards {
		return p.wildcards < other.wildcards
	}
	if len(p.Variables) != len(other.Variables) {
		return len(p.Variables) < len(other.Variables)
	}
	return p.literals > other.literals
}

// SameSpecificity reports whether neither template is more specific.
func (p *PathTemplate) SameSpecificity(other *PathTemplate) bool {
	return !p.MoreSpecific(other) && !other.MoreSpecific(p)
}
