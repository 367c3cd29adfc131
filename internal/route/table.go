package route

import (
	"bytes"

	"github.com/goccy/go-json"
)

// Route is a route name and its compiled patterns, in declaration order.
type Route struct {
	Name     string
	Patterns []*Pattern
}

// Table is the compiled router, in declaration order.
type Table []Route

// Match returns the first route whose pattern matches path.
func (t Table) Match(path string) (string, map[string]string, bool) {
	for _, r := range t {
		for _, p := range r.Patterns {
			if params, ok := p.Match(path); ok {
				return r.Name, params, true
			}
		}
	}

	return "", nil, false
}

// Lookup returns the route with the given name.
func (t Table) Lookup(name string) (Route, bool) {
	for _, r := range t {
		if r.Name == name {
			return r, true
		}
	}

	return Route{}, false
}

// MarshalJSON encodes the table as an object keyed by route name, keeping
// declaration order. A route whose templates were all skipped is kept with an
// empty pattern list.
func (t Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, r := range t {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(r.Name)
		if err != nil {
			return nil, err
		}

		patterns := r.Patterns
		if patterns == nil {
			patterns = []*Pattern{}
		}

		value, err := json.Marshal(patterns)
		if err != nil {
			return nil, err
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
