package docs

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"
)

type Method struct {
	Handler string         `yaml:"handler,omitempty"`
	Params  []RawParameter `yaml:"params,omitempty"`
}

// Path mirrors a request mapping. Keys starting with "/" are nested mappings
// whose paths are appended to this one.
type Path struct {
	Get    *Method
	Post   *Method
	Put    *Method
	Patch  *Method
	Delete *Method
	Nested Paths
}

type Paths = map[string]Path

func (p *Path) methodSlot(name string) (**Method, bool) {
	switch strings.ToLower(name) {
	case "get":
		return &p.Get, true
	case "post":
		return &p.Post, true
	case "put":
		return &p.Put, true
	case "patch":
		return &p.Patch, true
	case "delete":
		return &p.Delete, true
	}
	return nil, false
}

// Methods returns the declared methods keyed by upper-case HTTP verb.
func (p *Path) Methods() map[string]*Method {
	out := make(map[string]*Method)
	for verb, m := range map[string]*Method{
		"GET":    p.Get,
		"POST":   p.Post,
		"PUT":    p.Put,
		"PATCH":  p.Patch,
		"DELETE": p.Delete,
	} {
		if m != nil {
			out[verb] = m
		}
	}
	return out
}

// UnmarshalYAML implements BytesUnmarshaler for goccy/go-yaml
func (p *Path) UnmarshalYAML(data []byte) error {
	var raw map[string]yaml.RawMessage
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		if strings.HasPrefix(key, "/") {
			var nested Path
			if err := yaml.Unmarshal(value, &nested); err != nil {
				return fmt.Errorf("path %v: %w", key, err)
			}
			if p.Nested == nil {
				p.Nested = make(Paths)
			}
			p.Nested[key] = nested
			continue
		}

		slot, ok := p.methodSlot(key)
		if !ok {
			return fmt.Errorf("unknown key %q, expected a method or a nested path", key)
		}

		var method Method
		if err := yaml.Unmarshal(value, &method); err != nil {
			return fmt.Errorf("method %v: %w", key, err)
		}
		*slot = &method
	}

	return nil
}

func (p Path) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0)
	for _, item := range []struct {
		key string
		m   *Method
	}{{"get", p.Get}, {"post", p.Post}, {"put", p.Put}, {"patch", p.Patch}, {"delete", p.Delete}} {
		if item.m != nil {
			out = append(out, yaml.MapItem{Key: item.key, Value: item.m})
		}
	}
	for _, key := range slices.Sorted(maps.Keys(p.Nested)) {
		out = append(out, yaml.MapItem{Key: key, Value: p.Nested[key]})
	}
	return out, nil
}
