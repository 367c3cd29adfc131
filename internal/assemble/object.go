package assemble

import (
	"bytes"
	"sort"

	"github.com/goccy/go-json"
)

// object is a JSON object that keeps insertion order. Setting an existing key
// replaces its value in place.
type object struct {
	keys   []string
	values map[string]any
}

func newObject() *object {
	return &object{values: map[string]any{}}
}

func (o *object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

func (o *object) Get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// SetAll sets every key of m, in sorted key order.
func (o *object) SetAll(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		o.Set(k, m[k])
	}
}

// SetMissing sets the keys of m that are not set yet, in sorted key order.
func (o *object) SetMissing(m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		if _, ok := o.values[k]; !ok {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	for _, k := range keys {
		o.values[k] = m[k]
		o.keys = append(o.keys, k)
	}
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.MarshalWithOption(k, json.DisableHTMLEscape())
		if err != nil {
			return nil, err
		}

		value, err := json.MarshalWithOption(o.values[k], json.DisableHTMLEscape())
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
