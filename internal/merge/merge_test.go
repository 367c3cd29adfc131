package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeep(t *testing.T) {
	tests := []struct {
		name string
		dst  map[string]any
		src  map[string]any
		want map[string]any
	}{
		{
			name: "maps recurse",
			dst:  map[string]any{"setting": map[string]any{"es6": true, "minified": true}},
			src:  map[string]any{"setting": map[string]any{"es6": false}},
			want: map[string]any{"setting": map[string]any{"es6": false, "minified": true}},
		},
		{
			name: "arrays replace",
			dst:  map[string]any{"ignore": []any{"a", "b"}},
			src:  map[string]any{"ignore": []any{"c"}},
			want: map[string]any{"ignore": []any{"c"}},
		},
		{
			name: "scalar over map",
			dst:  map[string]any{"x": map[string]any{"y": 1}},
			src:  map[string]any{"x": 2},
			want: map[string]any{"x": 2},
		},
		{
			name: "nil sets nil",
			dst:  map[string]any{"appid": "wx1"},
			src:  map[string]any{"appid": nil},
			want: map[string]any{"appid": nil},
		},
		{
			name: "new keys added",
			dst:  map[string]any{"a": 1},
			src:  map[string]any{"b": map[string]any{"c": 3}},
			want: map[string]any{"a": 1, "b": map[string]any{"c": 3}},
		},
		{
			name: "nil dst",
			dst:  nil,
			src:  map[string]any{"a": 1},
			want: map[string]any{"a": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Deep(tt.dst, tt.src))
		})
	}
}

func TestDeep_DoesNotAliasSource(t *testing.T) {
	src := map[string]any{"nested": map[string]any{"a": 1}}

	out := Deep(nil, src)
	out["nested"].(map[string]any)["a"] = 2

	assert.Equal(t, 1, src["nested"].(map[string]any)["a"])
}
