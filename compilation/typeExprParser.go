package compilation

import (
	"fmt"
	"io"
	"strings"
	"unicode"
)

// TypeExpr is a parsed Java type reference such as
// java.util.List<? extends com.acme.Item>[].
type TypeExpr struct {
	Name     string
	Args     []TypeExpr
	Dims     int
	Wildcard bool
}

// SimpleName returns the last segment of the qualified name.
func (t TypeExpr) SimpleName() string {
	if idx := strings.LastIndex(t.Name, "."); idx != -1 {
		return t.Name[idx+1:]
	}
	return t.Name
}

func (t TypeExpr) IsArray() bool {
	return t.Dims > 0
}

func (t TypeExpr) String() string {
	var b strings.Builder
	if t.Wildcard {
		b.WriteString("?")
		if t.Name != "" {
			b.WriteString(" extends ")
		}
	}
	b.WriteString(t.Name)
	if len(t.Args) != 0 {
		b.WriteString("<")
		for idx, arg := range t.Args {
			if idx != 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.String())
		}
		b.WriteString(">")
	}
	for range t.Dims {
		b.WriteString("[]")
	}
	return b.String()
}

type typeReader struct {
	*strings.Reader
}

func (r typeReader) skipSpaces() {
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			return
		}
		if !unicode.IsSpace(ch) {
			r.UnreadRune()
			return
		}
	}
}

func (r typeReader) peek() (rune, bool) {
	ch, _, err := r.ReadRune()
	if err != nil {
		return 0, false
	}
	r.UnreadRune()
	return ch, true
}

func (r typeReader) consume(s string) bool {
	r.skipSpaces()
	pos := r.Size() - int64(r.Len())
	for _, want := range s {
		ch, _, err := r.ReadRune()
		if err != nil || ch != want {
			r.Seek(pos, io.SeekStart)
			return false
		}
	}
	return true
}

func isIdentRune(ch rune) bool {
	return ch == '_' || ch == '$' || ch == '.' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

func (r typeReader) readName() (string, error) {
	r.skipSpaces()
	var name strings.Builder
	for {
		ch, ok := r.peek()
		if !ok || !isIdentRune(ch) {
			break
		}
		r.ReadRune()
		name.WriteRune(ch)
	}
	if name.Len() == 0 {
		return "", fmt.Errorf("type name expected at offset %d", r.Size()-int64(r.Len()))
	}
	out := name.String()
	if strings.HasSuffix(out, "...") {
		// varargs, left for parseDims
		out = out[:len(out)-3]
		r.Seek(-3, io.SeekCurrent)
	}
	if out == "" {
		return "", fmt.Errorf("type name expected before ...")
	}
	if strings.HasPrefix(out, ".") || strings.HasSuffix(out, ".") || strings.Contains(out, "..") {
		return "", fmt.Errorf("malformed qualified name: %v", out)
	}
	return out, nil
}

func (r typeReader) parseArg() (TypeExpr, error) {
	if r.consume("?") {
		out := TypeExpr{Wildcard: true}
		if r.consume("extends") || r.consume("super") {
			bound, err := r.parseType()
			if err != nil {
				return TypeExpr{}, err
			}
			bound.Wildcard = true
			return bound, nil
		}
		return out, nil
	}
	return r.parseType()
}

func (r typeReader) parseType() (TypeExpr, error) {
	// annotations on type uses, e.g. @NotNull String
	for r.consume("@") {
		if _, err := r.readName(); err != nil {
			return TypeExpr{}, err
		}
	}

	name, err := r.readName()
	if err != nil {
		return TypeExpr{}, err
	}

	out := TypeExpr{Name: name}

	if r.consume("<") {
		if r.consume(">") {
			// diamond
			return r.parseDims(out)
		}
		for {
			arg, err := r.parseArg()
			if err != nil {
				return TypeExpr{}, err
			}
			out.Args = append(out.Args, arg)
			if r.consume(",") {
				continue
			}
			if r.consume(">") {
				break
			}
			return TypeExpr{}, fmt.Errorf("> not found in type arguments of %v", name)
		}
	}

	return r.parseDims(out)
}

func (r typeReader) parseDims(out TypeExpr) (TypeExpr, error) {
	for {
		switch {
		case r.consume("["):
			if !r.consume("]") {
				return TypeExpr{}, fmt.Errorf("] not found after [ in %v", out.Name)
			}
			out.Dims++
		case r.consume("..."):
			out.Dims++
		default:
			return out, nil
		}
	}
}

// ParseTypeExpr parses a Java type reference.
func ParseTypeExpr(expr string) (TypeExpr, error) {
	r := typeReader{strings.NewReader(expr)}

	out, err := r.parseType()
	if err != nil {
		return TypeExpr{}, fmt.Errorf("invalid type expression %q: %w", expr, err)
	}

	r.skipSpaces()
	if r.Len() != 0 {
		return TypeExpr{}, fmt.Errorf("invalid type expression %q: trailing input", expr)
	}

	return out, nil
}
