package asset

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapSource map[string][]byte

func (m mapSource) Content(path string) ([]byte, bool) {
	c, ok := m[path]
	return c, ok
}

type upperStyle struct{ calls int }

func (u *upperStyle) Transform(content []byte) ([]byte, error) {
	u.calls++
	return bytes.ToUpper(content), nil
}

type failingStyle struct{}

func (failingStyle) Transform([]byte) ([]byte, error) {
	return nil, errors.New("boom")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"common/main.js", KindScript, true},
		{"common/main.css", KindStyle, true},
		{"common/main.wxss", KindStyle, true},
		{"common/main.css?v=3", KindStyle, true},
		{"common/main.js.map", 0, false},
		{"common/logo.png", 0, false},
		{"common/main.jsx", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			kind, ok := Classify(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}

	assert.Equal(t, "script", KindScript.String())
	assert.Equal(t, "style", KindStyle.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}

func TestCollector_Collect(t *testing.T) {
	entries := []Entry{
		{Name: "page1", Files: []string{"vendors.js", "shared.js", "page1.js", "page1.css", "page1.js.map"}},
		{Name: "page2", Files: []string{"vendors.js", "shared.js", "p2-only.js", "shared.css", "shared.js"}},
		{Name: "page3", Files: []string{"vendors.js", "shared.css"}},
	}
	src := mapSource{"page1.css": []byte("a{}"), "shared.css": []byte("b{}")}
	style := &upperStyle{}

	col, diags := NewCollector(style, zerolog.Nop()).Collect(entries, src)
	require.NotNil(t, col)
	assert.Empty(t, diags.All())

	require.Len(t, col.Entries, 3)
	assert.Equal(t, []string{"page1", "page2", "page3"}, col.EntryNames())

	p2, ok := col.Lookup("page2")
	require.True(t, ok)
	assert.Equal(t, []string{"vendors.js", "shared.js", "p2-only.js"}, p2.Scripts)
	assert.Equal(t, []string{"shared.css"}, p2.Styles)
	assert.Equal(t, []string{"vendors.js", "shared.js", "p2-only.js", "shared.css"}, p2.All())

	assert.Equal(t, []string{"page1", "page2", "page3"}, col.Owners.Owners("vendors.js"))
	assert.Equal(t, []string{"page1", "page2"}, col.Owners.Owners("shared.js"))
	assert.Equal(t, []string{"page2"}, col.Owners.Owners("p2-only.js"))
	assert.Equal(t, []string{"page2", "page3"}, col.Owners.Owners("shared.css"))
	assert.Nil(t, col.Owners.Owners("unknown.js"))

	assert.Equal(t, KindStyle, col.Kinds["shared.css"])
	assert.NotContains(t, col.Kinds, "page1.js.map")

	// each style is normalized once, even when shared
	assert.Equal(t, 2, style.calls)
	assert.Equal(t, []byte("A{}"), col.Styles["page1.css"])
	assert.Equal(t, []byte("B{}"), col.Styles["shared.css"])

	assert.Equal(t,
		[]string{"vendors.js", "shared.js", "page1.js", "page1.css", "p2-only.js", "shared.css"},
		col.Paths())

	_, ok = col.Lookup("nope")
	assert.False(t, ok)
}

func TestCollector_StyleFailureKeepsContent(t *testing.T) {
	entries := []Entry{{Name: "page1", Files: []string{"page1.css", "missing.css"}}}
	src := mapSource{"page1.css": []byte("a{}")}

	col, diags := NewCollector(failingStyle{}, zerolog.Nop()).Collect(entries, src)

	assert.True(t, diags.HasCode("style_transform_failed"))
	assert.Equal(t, []byte("a{}"), col.Styles["page1.css"])
	assert.NotContains(t, col.Styles, "missing.css")
}

func TestCollector_NilSource(t *testing.T) {
	col, _ := NewCollector(nil, zerolog.Nop()).Collect([]Entry{{Name: "p", Files: []string{"a.css"}}}, nil)

	assert.Empty(t, col.Styles)
	assert.Equal(t, []string{"a.css"}, col.Entries[0].Styles)
}
