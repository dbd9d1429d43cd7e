package synth

import "strings"

const (
	ContentType    = "Content-Type"
	MediaJSON      = "application/json"
	MediaMultipart = "multipart/form-data"
)

type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (h Header) String() string {
	return h.Name + ": " + h.Value
}

func mediaType(value string) string {
	mt, _, _ := strings.Cut(value, ";")
	return strings.TrimSpace(mt)
}

// HeaderExists reports whether a field with the same name already carries
// the media type of value. Names compare exactly, values by case-insensitive
// containment.
func HeaderExists(existing []Header, name, value string) bool {
	want := strings.ToLower(mediaType(value))
	for _, h := range existing {
		if h.Name == name && strings.Contains(strings.ToLower(h.Value), want) {
			return true
		}
	}
	return false
}

// Missing returns the headers of want that do not exist yet, in order.
func Missing(existing []Header, want []Header) []Header {
	out := make([]Header, 0, len(want))
	for _, h := range want {
		if !HeaderExists(existing, h.Name, h.Value) {
			out = append(out, h)
		}
	}
	return out
}
