package host

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

const buildOutdir = "dist"

// EntrySpec names an entry and the source files it loads, in order. A source
// listed by several entries is built once and shared.
type EntrySpec struct {
	Name    string
	Sources []string
}

// BuildOptions configures an in-memory build.
type BuildOptions struct {
	// WorkDir is the absolute directory sources are resolved against.
	WorkDir string
	Entries []EntrySpec
	Minify  bool
	// Defines are substituted at compile time.
	Defines map[string]string
}

// Build bundles every entry source with esbuild without writing to disk.
// Cancelling ctx aborts the build.
func Build(ctx context.Context, opts BuildOptions) (*Compilation, error) {
	if len(opts.Entries) == 0 {
		return nil, fmt.Errorf("build: no entries")
	}

	var (
		points  []api.EntryPoint
		outName = map[string]string{}
		taken   = map[string]bool{}
	)

	for _, e := range opts.Entries {
		for _, src := range e.Sources {
			src = filepath.ToSlash(filepath.Clean(src))
			if _, ok := outName[src]; ok {
				continue
			}

			name := outputName(src, taken)
			outName[src] = name
			points = append(points, api.EntryPoint{InputPath: src, OutputPath: name})
		}
	}

	bctx, cerr := api.Context(api.BuildOptions{
		EntryPointsAdvanced: points,
		Bundle:              true,
		Write:               false,
		Metafile:            true,
		Format:              api.FormatCommonJS,
		Platform:            api.PlatformBrowser,
		Target:              api.ES2017,
		Outdir:              buildOutdir,
		AbsWorkingDir:       opts.WorkDir,
		MinifyWhitespace:    opts.Minify,
		MinifyIdentifiers:   opts.Minify,
		MinifySyntax:        opts.Minify,
		Define:              opts.Defines,
		LogLevel:            api.LogLevelSilent,
	})
	if cerr != nil {
		return nil, fmt.Errorf("build: %s", joinMessages(cerr.Errors))
	}
	defer bctx.Dispose()

	stop := context.AfterFunc(ctx, bctx.Cancel)
	defer stop()

	result := bctx.Rebuild()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("build failed: %s", joinMessages(result.Errors))
	}

	meta, err := ParseMetafile([]byte(result.Metafile))
	if err != nil {
		return nil, err
	}

	contents := make(map[string][]byte, len(result.OutputFiles))

	for _, f := range result.OutputFiles {
		rel, err := filepath.Rel(opts.WorkDir, f.Path)
		if err != nil {
			return nil, fmt.Errorf("build: output %q: %w", f.Path, err)
		}

		contents[filepath.ToSlash(rel)] = f.Contents
	}

	keyOf := map[string]string{}

	for _, key := range meta.EntryOutputs() {
		keyOf[strings.TrimSuffix(key, path.Ext(key))] = key
	}

	entries := make([]entryNaming, 0, len(opts.Entries))

	for _, e := range opts.Entries {
		naming := entryNaming{name: e.Name}

		for _, src := range e.Sources {
			name := outName[filepath.ToSlash(filepath.Clean(src))]
			if key, ok := keyOf[buildOutdir+"/"+name]; ok {
				naming.keys = append(naming.keys, key)
			}
		}

		entries = append(entries, naming)
	}

	read := func(key string) ([]byte, error) {
		data, ok := contents[key]
		if !ok {
			return nil, fmt.Errorf("no output file")
		}

		return data, nil
	}

	return fromMetafile(meta, buildOutdir, entries, read)
}

// outputName picks a unique output stem for a source: its base name, or its
// slash path with separators replaced when the base name is taken.
func outputName(src string, taken map[string]bool) string {
	stem := strings.TrimSuffix(src, path.Ext(src))

	name := path.Base(stem)
	if taken[name] {
		name = strings.NewReplacer("/", "-", "..", "_").Replace(strings.TrimPrefix(stem, "./"))
	}

	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s-%d", path.Base(stem), i)
	}

	taken[name] = true

	return name
}

func joinMessages(msgs []api.Message) string {
	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		texts = append(texts, m.Text)
	}

	return strings.Join(texts, "; ")
}
