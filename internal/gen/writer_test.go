package gen

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	fs := afero.NewMemMapFs()

	files := []GeneratedFile{
		{Filename: "app.json", Content: []byte("{}")},
		{Filename: "package1/pages/page2/index.js", Content: []byte("Page({})")},
	}

	require.NoError(t, WriteFiles(fs, files, "out"))

	data, err := afero.ReadFile(fs, "out/app.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	data, err = afero.ReadFile(fs, "out/package1/pages/page2/index.js")
	require.NoError(t, err)
	assert.Equal(t, "Page({})", string(data))
}

func TestWriteFiles_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := WriteFiles(fs, []GeneratedFile{{Filename: "a.js"}}, "out")
	assert.ErrorContains(t, err, "creating output directory")
}

func TestEncodeJSON(t *testing.T) {
	data, err := EncodeJSON(map[string]any{"a": []int{1}}, "\t")
	require.NoError(t, err)
	assert.Equal(t, "{\n\t\"a\": [\n\t\t1\n\t]\n}", string(data))

	data, err = EncodeJSON(map[string]any{"a": 1}, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestEncodeJSON_NoHTMLEscape(t *testing.T) {
	data, err := EncodeJSON(map[string]string{"a": "<b>&"}, "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":"<b>&"}`, string(data))
}
