package models

import "strings"

// Attrs is an arbitrary attribute mapping, the storage shape of a product
// document (name, price, category, stock, ...).
type Attrs map[string]interface{}

// Clean returns a copy of a with absent and empty attributes dropped:
// nil values and empty/whitespace-only strings are removed.
func (a Attrs) Clean() Attrs {
	out := make(Attrs, len(a))
	for key, value := range a {
		if value == nil {
			continue
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Number reads a numeric attribute. The store may hand back any numeric
// width depending on how the document was written.
func (a Attrs) Number(key string) (float64, bool) {
	switch n := a[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// String reads a string attribute.
func (a Attrs) String(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}
