package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mp-generator/internal/asset"
	"mp-generator/internal/config"
	"mp-generator/internal/cssadjust"
	"mp-generator/internal/host"
	"mp-generator/internal/sandbox"
)

const demoYAML = `
router:
  page1: /a
  page2: /b
  page3: /c
  page4: [/d/:id]
redirect:
  notFound: webview
generate:
  subpackages:
    package1: [page2]
    package2: [page3, page4]
  preloadRule:
    page1:
      network: all
      packages: [package1]
global:
  backgroundColor: "#fff"
pages:
  page2:
    pullDownRefresh: true
    reachBottom: false
`

func demoOptions(t *testing.T) *config.Options {
	t.Helper()

	opts, err := config.Parse([]byte(demoYAML))
	require.NoError(t, err)

	return opts
}

func demoCompilation() *host.Compilation {
	c := host.NewCompilation()

	for name, content := range map[string]string{
		"shared.js":  "var shared = 1;",
		"page1.js":   "console.log(shared);",
		"p2-only.js": "console.log('p2');",
		"p34.js":     "var p34 = 34;",
		"page4.js":   "console.log(p34);",
		"common.css": "body { color: red; }",
		"page3.css":  "div { margin: 0; }",
		"logo.png":   "png",
	} {
		c.Emit(name, []byte(content))
	}

	c.Entrypoints = []asset.Entry{
		{Name: "page1", Files: []string{"shared.js", "page1.js", "common.css"}},
		{Name: "page2", Files: []string{"shared.js", "p2-only.js", "common.css"}},
		{Name: "page3", Files: []string{"p34.js", "page3.css"}},
		{Name: "page4", Files: []string{"p34.js", "page4.js"}},
	}

	for _, js := range []string{"p2-only.js", "p34.js", "page1.js", "page4.js", "shared.js"} {
		c.Chunks = append(c.Chunks, host.Chunk{Name: strings.TrimSuffix(js, ".js"), Files: []string{js}})
	}

	return c
}

func run(t *testing.T, cfg Config, opts *config.Options) *Result {
	t.Helper()

	res, err := New(cfg, zerolog.Nop()).Run(context.Background(), opts, demoCompilation())
	require.NoError(t, err)

	return res
}

func fileNames(res *Result) []string {
	names := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		names = append(names, f.Filename)
	}

	return names
}

func TestRun_Layout(t *testing.T) {
	res := run(t, DefaultConfig(), demoOptions(t))

	names := fileNames(res)
	for _, want := range []string{
		"common/shared.js",
		"common/page1.js",
		"common/common.css",
		"common/logo.png",
		"package1/common/p2-only.js",
		"package2/common/p34.js",
		"package2/common/page4.js",
		"package2/common/page3.css",
		"pages/page1/index.js",
		"pages/page1/index.wxml",
		"pages/page1/index.wxss",
		"pages/page1/index.json",
		"package1/pages/page2/index.js",
		"package2/pages/page3/index.wxss",
		"package2/pages/page4/index.json",
		"pages/webview/index.js",
		"app.js",
		"app.json",
		"app.wxss",
		"config.js",
		"project.config.json",
		"package.json",
		"node_modules/.miniprogram",
	} {
		assert.Contains(t, names, want, spew.Sdump(names))
	}

	assert.NotContains(t, names, "shared.js")
	assert.False(t, res.HasPrefix("package1/common/shared"), "shared.js stays shared")
}

func TestRun_PageScripts(t *testing.T) {
	res := run(t, DefaultConfig(), demoOptions(t))

	page2, ok := res.Lookup("package1/pages/page2/index.js")
	require.True(t, ok)
	assert.Contains(t, string(page2), "require('../../../common/shared.js')(window, document);require('../../common/p2-only.js')(window, document)")
	assert.Contains(t, string(page2), "onPullDownRefresh()")
	assert.NotContains(t, string(page2), "onReachBottom()")
	assert.NotContains(t, string(page2), sandbox.Header(), "page scripts are not chunks")

	manifest, _ := res.Lookup("package1/pages/page2/index.json")
	assert.Contains(t, string(manifest), `"enablePullDownRefresh": true`)
	assert.NotContains(t, string(manifest), "onReachBottomDistance")
}

func TestRun_WrapsEveryChunkScriptOnce(t *testing.T) {
	for _, deferred := range []bool{false, true} {
		opts := demoOptions(t)
		opts.Generate.AfterOptimizations = deferred

		res := run(t, DefaultConfig(), opts)

		assert.ElementsMatch(t, []string{
			"common/shared.js",
			"common/page1.js",
			"package1/common/p2-only.js",
			"package2/common/p34.js",
			"package2/common/page4.js",
		}, res.Wrapped)

		for _, file := range res.Wrapped {
			content, ok := res.Lookup(file)
			require.True(t, ok)
			assert.Equal(t, 1, strings.Count(string(content), sandbox.Header()), file)
			assert.True(t, strings.HasPrefix(string(content), sandbox.Header()), file)
			assert.True(t, strings.HasSuffix(string(content), sandbox.Footer), file)
		}

		css, _ := res.Lookup("common/common.css")
		assert.Equal(t, "body { color: red; }", string(css))
	}
}

func TestRun_InlineWrapBeforeSeal(t *testing.T) {
	res := run(t, DefaultConfig(), demoOptions(t))

	assert.Equal(t, []string{
		"collect:collect",
		"partition:partition",
		"route:route",
		"generate:generate",
		"assemble:assemble",
		"emit:emit",
		"optimize:wrap",
		"optimize:seal",
	}, res.Trace)

	final := finalCompilation(res)
	for _, ch := range final.Chunks {
		assert.Equal(t, ChunkHash(final, ch), res.ChunkHashes[ch.Name], "sealed hash covers the wrapped content")
	}
}

func TestRun_DeferredWrapAfterSeal(t *testing.T) {
	opts := demoOptions(t)
	opts.Generate.AfterOptimizations = true

	res := run(t, Config{Generator: DefaultConfig().Generator, Minify: true}, opts)

	assert.Equal(t, []string{
		"collect:collect",
		"partition:partition",
		"route:route",
		"generate:generate",
		"assemble:assemble",
		"emit:emit",
		"optimize:minify",
		"optimize:seal",
		"wrap:wrap",
	}, res.Trace)

	final := finalCompilation(res)
	for _, ch := range final.Chunks {
		assert.NotEqual(t, ChunkHash(final, ch), res.ChunkHashes[ch.Name], "sealed before the wrap")
	}
}

func TestRun_MinifyRunsBeforeInlineWrap(t *testing.T) {
	res := run(t, Config{Generator: DefaultConfig().Generator, Minify: true}, demoOptions(t))

	assert.Equal(t, []string{"optimize:minify", "optimize:wrap", "optimize:seal"}, res.Trace[len(res.Trace)-3:])

	content, _ := res.Lookup("common/shared.js")
	assert.True(t, strings.HasPrefix(string(content), sandbox.Header()))
	assert.True(t, strings.HasSuffix(string(content), sandbox.Footer))
}

// finalCompilation rebuilds the chunk view of a result.
func finalCompilation(res *Result) *host.Compilation {
	c := host.NewCompilation()
	for _, f := range res.Files {
		c.Emit(f.Filename, f.Content)
	}

	for _, file := range res.Wrapped {
		c.Chunks = append(c.Chunks, host.Chunk{Name: chunkNameOf(file), Files: []string{file}})
	}

	return c
}

func chunkNameOf(file string) string {
	name := file[strings.LastIndex(file, "/")+1:]
	return strings.TrimSuffix(name, ".js")
}

func TestRun_Idempotent(t *testing.T) {
	opts := demoOptions(t)
	comp := demoCompilation()
	driver := New(DefaultConfig(), zerolog.Nop())

	first, err := driver.Run(context.Background(), opts, comp)
	require.NoError(t, err)

	second, err := driver.Run(context.Background(), opts, comp)
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)

	shared, ok := comp.Content("shared.js")
	require.True(t, ok, "input compilation untouched")
	assert.Equal(t, "var shared = 1;", string(shared))
	assert.False(t, opts.Generate.AfterOptimizations)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultConfig(), zerolog.Nop()).Run(ctx, demoOptions(t), demoCompilation())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_NilInputs(t *testing.T) {
	_, err := New(DefaultConfig(), zerolog.Nop()).Run(context.Background(), nil, nil)
	assert.Error(t, err)
}

func TestRun_Diagnostics(t *testing.T) {
	opts := demoOptions(t)
	opts.Generate.Subpackages[0].Pages = append(opts.Generate.Subpackages[0].Pages, "pgae1")
	opts.Router = append(opts.Router, config.Route{Name: "page5", Templates: []any{7}})

	res := run(t, DefaultConfig(), opts)

	assert.True(t, res.Diagnostics.HasCode("unknown_package_page"))
	assert.True(t, res.Diagnostics.HasCode("route_template_skipped"))
	assert.False(t, res.Diagnostics.HasErrors())
}

func TestRun_StyleNormalizer(t *testing.T) {
	res := run(t, Config{Generator: DefaultConfig().Generator, Style: cssadjust.New()}, demoOptions(t))

	css, _ := res.Lookup("common/common.css")
	assert.Contains(t, string(css), "page {")
	assert.NotContains(t, string(css), "body")

	page3, _ := res.Lookup("package2/common/page3.css")
	assert.Contains(t, string(page3), ".h5-div {")
}
