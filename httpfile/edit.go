package httpfile

import (
	"fmt"
	"slices"
	"strings"
)

// Edit inserts Text at Offset of the original document.
type Edit struct {
	Offset int    `json:"offset"`
	Text   string `json:"text"`
}

// Apply performs all insertions against the original text in one pass.
// Insertions at the same offset keep their order. Nothing is applied if any
// offset is out of range.
func Apply(text string, edits []Edit) (string, error) {
	for _, e := range edits {
		if e.Offset < 0 || e.Offset > len(text) {
			return "", fmt.Errorf("edit offset %d out of range [0, %d]", e.Offset, len(text))
		}
	}

	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int {
		return a.Offset - b.Offset
	})

	var b strings.Builder
	b.Grow(len(text))

	last := 0
	for _, e := range sorted {
		b.WriteString(text[last:e.Offset])
		b.WriteString(e.Text)
		last = e.Offset
	}
	b.WriteString(text[last:])

	return b.String(), nil
}
