package host

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mp-generator/internal/asset"
)

const demoMetafile = `{
  "inputs": {"src/page1.js": {"bytes": 10}},
  "outputs": {
    "build/dist/page1.js": {
      "bytes": 3,
      "entryPoint": "src/page1.js",
      "cssBundle": "build/dist/page1.css",
      "imports": [
        {"path": "build/dist/chunk-shared.js", "kind": "import-statement"},
        {"path": "build/dist/lazy.js", "kind": "dynamic-import"},
        {"path": "react", "kind": "require-call", "external": true}
      ]
    },
    "build/dist/page2.js": {
      "bytes": 3,
      "entryPoint": "src/page2.js",
      "imports": [{"path": "build/dist/chunk-shared.js", "kind": "import-statement"}]
    },
    "build/dist/chunk-shared.js": {"bytes": 6, "imports": []},
    "build/dist/lazy.js": {"bytes": 4, "imports": []},
    "build/dist/page1.css": {"bytes": 5, "imports": []}
  }
}`

func writeDemo(t *testing.T, fs afero.Fs) {
	t.Helper()

	files := map[string]string{
		"proj/meta.json":                  demoMetafile,
		"proj/build/dist/page1.js":        "p1;",
		"proj/build/dist/page2.js":        "p2;",
		"proj/build/dist/chunk-shared.js": "shared",
		"proj/build/dist/lazy.js":         "lazy",
		"proj/build/dist/page1.css":       "a{b:c}",
	}

	for p, content := range files {
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}
}

func TestLoadMetafile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDemo(t, fs)

	c, err := LoadMetafile(fs, "proj/meta.json", "proj", "build/dist")
	require.NoError(t, err)

	assert.Equal(t, []asset.Entry{
		{Name: "page1", Files: []string{"chunk-shared.js", "page1.js", "page1.css"}},
		{Name: "page2", Files: []string{"chunk-shared.js", "page2.js"}},
	}, c.Entrypoints)

	assert.Equal(t, []Chunk{
		{Name: "chunk-shared", Files: []string{"chunk-shared.js"}},
		{Name: "lazy", Files: []string{"lazy.js"}},
		{Name: "page1", Files: []string{"page1.js"}},
		{Name: "page2", Files: []string{"page2.js"}},
	}, c.Chunks)

	content, ok := c.Content("chunk-shared.js")
	require.True(t, ok)
	assert.Equal(t, "shared", string(content))
	assert.Equal(t, uint64(22), c.Size())
}

func TestLoadMetafile_OutputOutsideDist(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeDemo(t, fs)

	_, err := LoadMetafile(fs, "proj/meta.json", "proj", "other")
	assert.ErrorContains(t, err, "outside")
}

func TestLoadMetafile_Missing(t *testing.T) {
	_, err := LoadMetafile(afero.NewMemMapFs(), "nope.json", ".", ".")
	assert.ErrorContains(t, err, "read metafile")
}

func TestCompilation_MoveAndClone(t *testing.T) {
	c := NewCompilation()
	c.Emit("a.js", []byte("a"))
	c.Chunks = []Chunk{{Name: "a", Files: []string{"a.js"}}}

	clone := c.Clone()

	require.True(t, c.Move("a.js", "pkg/common/a.js"))
	assert.False(t, c.Move("missing.js", "x.js"))

	assert.Equal(t, []string{"pkg/common/a.js"}, c.Paths())
	assert.Equal(t, []string{"pkg/common/a.js"}, c.Chunks[0].Files)

	assert.Equal(t, []string{"a.js"}, clone.Paths())
	assert.Equal(t, []string{"a.js"}, clone.Chunks[0].Files)
}

func TestOutputName(t *testing.T) {
	taken := map[string]bool{}

	assert.Equal(t, "index", outputName("src/a/index.js", taken))
	assert.Equal(t, "src-b-index", outputName("src/b/index.ts", taken))
	assert.Equal(t, "index-2", outputName("src-b/index.js", map[string]bool{"index": true, "src-b-index": true}))
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"src/shared.js": "export const shared = 1;\n",
		"src/page1.js":  "import './page1.css';\nconsole.log(process.env.MINIPROGRAM);\n",
		"src/page1.css": "body { color: red; }\n",
		"src/page2.js":  "console.log('page2');\n",
	}

	for p, content := range files {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	c, err := Build(context.Background(), BuildOptions{
		WorkDir: dir,
		Entries: []EntrySpec{
			{Name: "page1", Sources: []string{"src/shared.js", "src/page1.js"}},
			{Name: "page2", Sources: []string{"src/shared.js", "src/page2.js"}},
		},
		Defines: map[string]string{"process.env.MINIPROGRAM": `"true"`},
	})
	require.NoError(t, err)

	require.Len(t, c.Entrypoints, 2)
	assert.Equal(t, asset.Entry{Name: "page1", Files: []string{"shared.js", "page1.js", "page1.css"}}, c.Entrypoints[0])
	assert.Equal(t, asset.Entry{Name: "page2", Files: []string{"shared.js", "page2.js"}}, c.Entrypoints[1])

	js, ok := c.Content("page1.js")
	require.True(t, ok)
	assert.Contains(t, string(js), `"true"`)

	_, ok = c.Content("page1.css")
	assert.True(t, ok)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("1"), 0o644))

	_, err := Build(ctx, BuildOptions{WorkDir: dir, Entries: []EntrySpec{{Name: "a", Sources: []string{"a.js"}}}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_NoEntries(t *testing.T) {
	_, err := Build(context.Background(), BuildOptions{})
	assert.Error(t, err)
}
