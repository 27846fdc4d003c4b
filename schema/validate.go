package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColumn is returned when a required column is absent from the header row.
var ErrMissingColumn = errors.New("missing required column")

// Binding is the result of matching a header row against a Config.
// Index i holds the schema key for CSV column i, or "" when the column is unmapped.
type Binding struct {
	Keys      []string
	IsMeasure []bool
}

// Bind matches headers against c. Headers are compared exactly after trimming
// surrounding whitespace. Every missing required column is reported in one error.
func Bind(headers []string, c Config) (Binding, error) {
	b := Binding{
		Keys:      make([]string, len(headers)),
		IsMeasure: make([]bool, len(headers)),
	}

	present := make(map[string]int, len(headers))
	for i, h := range headers {
		present[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, d := range c.Dimensions {
		if i, ok := present[d.Column]; ok {
			b.Keys[i] = d.Key
		} else if d.Required {
			missing = append(missing, d.Column)
		}
	}
	for _, m := range c.Measures {
		if i, ok := present[m.Column]; ok {
			b.Keys[i] = m.Key
			b.IsMeasure[i] = true
		} else if m.Required {
			missing = append(missing, m.Column)
		}
	}

	if len(missing) > 0 {
		return Binding{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(quoteAll(missing), ", "))
	}
	return b, nil
}

func quoteAll(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
