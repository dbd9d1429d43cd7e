// Package resolve finds the handler method behind a request path and the
// fields of the types it refers to.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/masnyjimmy/srihc/compilation"
	"github.com/masnyjimmy/srihc/docs"
)

var (
	ErrNoMatch   = errors.New("no endpoint matches the request path")
	ErrAmbiguous = errors.New("request path matches more than one endpoint")
	ErrNotMethod = errors.New("endpoint does not resolve to a handler method")
)

type Endpoint struct {
	Method  string              `json:"method"`
	Pattern string              `json:"pattern"`
	Handler string              `json:"handler"`
	Params  []docs.RawParameter `json:"-"`
}

// Resolver is the symbol resolution service generation depends on.
type Resolver interface {
	Resolve(method, path string) (Endpoint, error)
	// Fields returns the fields of the class named by typeExpr. ok is false
	// when the type cannot be resolved.
	Fields(typeExpr string) (fields []string, ok bool)
}

type Catalog struct {
	catalog *compilation.Catalog
}

func New(catalog *compilation.Catalog) *Catalog {
	return &Catalog{catalog: catalog}
}

func (c *Catalog) Routes() compilation.Routes {
	return c.catalog.Routes
}

func mostSpecific(routes []*compilation.Route) []*compilation.Route {
	best := []*compilation.Route{routes[0]}
	for _, r := range routes[1:] {
		switch {
		case r.Template.MoreSpecific(best[0].Template):
			best = []*compilation.Route{r}
		case r.Template.SameSpecificity(best[0].Template):
			best = append(best, r)
		}
	}
	return best
}

// Resolve matches path against every route. When several routes match, the
// HTTP method narrows the candidates, then the most specific template wins.
// An empty method matches any.
func (c *Catalog) Resolve(method, path string) (Endpoint, error) {
	method = strings.ToUpper(method)

	matches := make([]*compilation.Route, 0)
	for idx := range c.catalog.Routes {
		route := &c.catalog.Routes[idx]
		if route.Template.Match(path) {
			matches = append(matches, route)
		}
	}

	if len(matches) == 0 {
		return Endpoint{}, fmt.Errorf("%w: %v", ErrNoMatch, path)
	}

	if len(matches) > 1 && method != "" {
		sameMethod := make([]*compilation.Route, 0, len(matches))
		for _, r := range matches {
			if r.Method == method {
				sameMethod = append(sameMethod, r)
			}
		}
		if len(sameMethod) != 0 {
			matches = sameMethod
		}
	}

	if len(matches) > 1 {
		matches = mostSpecific(matches)
	}

	if len(matches) > 1 {
		candidates := make([]string, len(matches))
		for idx, r := range matches {
			candidates[idx] = r.Method + " " + r.Template.Pattern
		}
		return Endpoint{}, fmt.Errorf("%w: %v %v (%v)", ErrAmbiguous, method, path, strings.Join(candidates, ", "))
	}

	route := matches[0]
	if route.Handler == "" {
		return Endpoint{}, fmt.Errorf("%w: %v %v", ErrNotMethod, route.Method, route.Template.Pattern)
	}

	return Endpoint{
		Method:  route.Method,
		Pattern: route.Template.Pattern,
		Handler: route.Handler,
		Params:  route.Params,
	}, nil
}

// Fields resolves the raw class of typeExpr, so Page<User> looks up Page.
func (c *Catalog) Fields(typeExpr string) ([]string, bool) {
	expr, err := compilation.ParseTypeExpr(typeExpr)
	if err != nil || expr.IsArray() {
		return nil, false
	}

	info, ok := c.catalog.Types.Lookup(expr.Name)
	if !ok {
		return nil, false
	}
	return info.Fields, true
}

var _ Resolver = (*Catalog)(nil)
