package docs

// Type describes the declared fields of a class. Fields of the super type
// named by Extends are inherited.
type Type struct {
	Extends string   `yaml:"extends,omitempty"`
	Fields  []string `yaml:"fields,omitempty"`
}

type Types = map[string]Type
