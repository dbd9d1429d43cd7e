package docs

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// RawParameter is a method parameter as a resolver sees it, before any
// classification.
type RawParameter struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type,omitempty"`
	Annotations []Annotation `yaml:"annotations,omitempty"`
}

// Attribute is a single annotation attribute. Text is the attribute value as
// it appears in source, quotes included.
type Attribute struct {
	Name string
	Text string
}

type Attributes []Attribute

func (a Attributes) Lookup(name string) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Text, true
		}
	}
	return "", false
}

type Annotation struct {
	Name       string
	Attributes Attributes
}

type annotationObject struct {
	Name       string        `yaml:"name"`
	Attributes yaml.MapSlice `yaml:"attributes,omitempty"`
}

// UnmarshalYAML accepts either a bare qualified name or an object with name
// and attributes. Attribute order is preserved.
func (a *Annotation) UnmarshalYAML(data []byte) error {
	var probe any
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return err
	}

	if name, ok := probe.(string); ok {
		a.Name = name
		a.Attributes = nil
		return nil
	}

	var obj annotationObject
	if err := yaml.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("failed to unmarshal annotation as string or object: %w", err)
	}

	attrs := make(Attributes, 0, len(obj.Attributes))
	for _, item := range obj.Attributes {
		key, ok := item.Key.(string)
		if !ok {
			return fmt.Errorf("attribute name must be a string, got %T", item.Key)
		}
		attrs = append(attrs, Attribute{
			Name: key,
			Text: fmt.Sprint(item.Value),
		})
	}

	a.Name = obj.Name
	a.Attributes = attrs
	return nil
}

func (a Annotation) MarshalYAML() (any, error) {
	if len(a.Attributes) == 0 {
		return a.Name, nil
	}

	attrs := make(yaml.MapSlice, 0, len(a.Attributes))
	for _, attr := range a.Attributes {
		attrs = append(attrs, yaml.MapItem{Key: attr.Name, Value: attr.Text})
	}

	return annotationObject{Name: a.Name, Attributes: attrs}, nil
}
