package compilation

import "strings"

// TypeInfo is a type with its inheritance already flattened. Fields lists
// the declared fields first, then those of each super type in order.
type TypeInfo struct {
	Name   string
	Fields []string
}

type Types map[string]TypeInfo

func simpleName(name string) string {
	if idx := strings.LastIndex(name, "."); idx != -1 {
		return name[idx+1:]
	}
	return name
}

// Lookup finds a type by its name as declared, falling back to a unique
// match on the simple name.
func (t Types) Lookup(name string) (TypeInfo, bool) {
	if info, ok := t[name]; ok {
		return info, true
	}

	want := simpleName(name)
	var found *TypeInfo
	for key, info := range t {
		if simpleName(key) != want {
			continue
		}
		if found != nil {
			return TypeInfo{}, false
		}
		found = &info
	}

	if found == nil {
		return TypeInfo{}, false
	}
	return *found, true
}
