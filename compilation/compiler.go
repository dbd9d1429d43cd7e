// Package compilation turns an endpoint metadata document into a catalog
// that can be searched by request path.
package compilation

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/masnyjimmy/srihc/docs"
)

type Catalog struct {
	Routes Routes
	Types  Types
}

type CompileContext struct {
	in  *docs.Document
	out *Catalog

	contextPath string
}

func newCompileContext(input *docs.Document, output *Catalog) *CompileContext {
	return &CompileContext{
		in:          input,
		out:         output,
		contextPath: input.ContextPath,
	}
}

func (c *CompileContext) flattenType(name string, visiting map[string]bool) ([]string, error) {
	if info, ok := c.out.Types[name]; ok {
		return info.Fields, nil
	}

	t, ok := c.in.Types[name]
	if !ok {
		return nil, fmt.Errorf("unknown type: %v", name)
	}

	if visiting[name] {
		return nil, fmt.Errorf("inheritance cycle through %v", name)
	}
	visiting[name] = true
	defer delete(visiting, name)

	fields := slices.Clone(t.Fields)

	if t.Extends != "" {
		inherited, err := c.flattenType(t.Extends, visiting)
		if err != nil {
			return nil, fmt.Errorf("%v extends %v: %w", name, t.Extends, err)
		}
		for _, field := range inherited {
			if !slices.Contains(fields, field) {
				fields = append(fields, field)
			}
		}
	}

	c.out.Types[name] = TypeInfo{
		Name:   name,
		Fields: fields,
	}

	return fields, nil
}

func (c *CompileContext) CompileTypes() error {
	c.out.Types = make(Types, len(c.in.Types))

	for _, name := range slices.Sorted(maps.Keys(c.in.Types)) {
		if _, err := c.flattenType(name, make(map[string]bool)); err != nil {
			return err
		}
	}
	return nil
}

func joinPath(parent, child string) string {
	return NormalizePath(strings.TrimSuffix(parent, "/") + "/" + strings.TrimPrefix(child, "/"))
}

func (c *CompileContext) CompilePaths() error {
	c.out.Routes = make(Routes, 0)

	var collectPaths func(currentPath string, p docs.Path) error

	collectPaths = func(currentPath string, current docs.Path) error {
		for verb, method := range current.Methods() {
			template, err := CompilePathTemplate(currentPath)
			if err != nil {
				return fmt.Errorf("unable to compile %v %v: %w", verb, currentPath, err)
			}

			c.out.Routes = append(c.out.Routes, Route{
				Method:   verb,
				Template: template,
				Handler:  method.Handler,
				Params:   method.Params,
			})
		}

		for nextPath, next := range current.Nested {
			if err := collectPaths(joinPath(currentPath, nextPath), next); err != nil {
				return err
			}
		}
		return nil
	}

	for currentPath, current := range c.in.Paths {
		if err := collectPaths(joinPath(c.contextPath, currentPath), current); err != nil {
			return fmt.Errorf("unable to collect paths: %w", err)
		}
	}

	slices.SortFunc(c.out.Routes, func(a, b Route) int {
		return cmp.Or(
			cmp.Compare(a.Template.Pattern, b.Template.Pattern),
			cmp.Compare(a.Method, b.Method),
		)
	})

	return nil
}

func (c *CompileContext) Parse() error {
	if err := c.CompileTypes(); err != nil {
		return err
	}

	if err := c.CompilePaths(); err != nil {
		return err
	}

	return nil
}

// Compile builds a catalog from a metadata document.
func Compile(in *docs.Document) (*Catalog, error) {
	return CompileWithContextPath(in, "")
}

// CompileWithContextPath is Compile with the document's context path
// replaced, unless contextPath is empty.
func CompileWithContextPath(in *docs.Document, contextPath string) (*Catalog, error) {
	out := &Catalog{}

	ctx := newCompileContext(in, out)
	if contextPath != "" {
		ctx.contextPath = contextPath
	}

	if err := ctx.Parse(); err != nil {
		return nil, err
	}

	return out, nil
}
