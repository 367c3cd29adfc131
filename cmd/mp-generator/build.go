package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"mp-generator/internal/config"
	"mp-generator/internal/cssadjust"
	"mp-generator/internal/gen"
	"mp-generator/internal/host"
	"mp-generator/internal/pipeline"
	"mp-generator/internal/platform"
)

var errNoInput = errors.New("either --metafile or at least one --entry is required")

func (a *app) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Generate the mini-program project",
		Long: `Read a host compilation, run every phase and write the project to --out.

The compilation is either an esbuild metafile with its output directory
(--metafile, --dist) or an in-process build of the given entries (--entry).`,
		Example: `  mp-generator build --metafile meta.json --dist dist --out miniprogram
  mp-generator build --entry page1=src/page1.js --entry page2=src/page2.js`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd.Context())
		},
	}

	cmd.Flags().String("out", "miniprogram", "output directory")
	addHostFlags(cmd)

	return cmd
}

// addHostFlags registers the flags that select the host compilation.
func addHostFlags(cmd *cobra.Command) {
	cmd.Flags().String("metafile", "", "esbuild metafile describing the compilation")
	cmd.Flags().String("base", ".", "directory metafile paths are relative to")
	cmd.Flags().String("dist", "dist", "output directory of the compilation, relative to --base")
	cmd.Flags().StringArray("entry", nil, "entry as name=source; repeat a name to add sources")
	cmd.Flags().String("workdir", ".", "directory --entry sources are resolved against")
	cmd.Flags().Bool("minify", false, "minify chunk scripts")
}

func (a *app) runBuild(ctx context.Context) error {
	opts, res, err := a.runPipeline(ctx)
	if err != nil {
		return err
	}

	out := a.v.GetString("out")
	if err := gen.WriteFiles(a.fs, res.Files, out); err != nil {
		return err
	}

	a.logger.Info().
		Str("out", out).
		Int("pages", len(res.Pages)).
		Int("packages", len(opts.Generate.Subpackages)).
		Int("relocated", len(res.Plan.Relocations())).
		Int("files", len(res.Files)).
		Str("size", humanize.Bytes(res.Size())).
		Msg("build complete")

	return nil
}

// runPipeline loads the options and the compilation and runs the driver.
func (a *app) runPipeline(ctx context.Context) (*config.Options, *pipeline.Result, error) {
	opts, err := a.loadOptions()
	if err != nil {
		return nil, nil, err
	}

	comp, err := a.loadCompilation(ctx)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Debug().
		Int("entries", len(comp.Entrypoints)).
		Int("chunks", len(comp.Chunks)).
		Str("size", humanize.Bytes(comp.Size())).
		Msg("loaded compilation")

	cfg := pipeline.DefaultConfig()
	cfg.Style = cssadjust.New()
	cfg.Minify = a.v.GetBool("minify")

	res, err := pipeline.New(cfg, a.logger).Run(ctx, opts, comp)
	if err != nil {
		return nil, nil, err
	}

	res.Diagnostics.Log(a.logger)

	return opts, res, nil
}

func (a *app) loadCompilation(ctx context.Context) (*host.Compilation, error) {
	if meta := a.v.GetString("metafile"); meta != "" {
		return host.LoadMetafile(a.fs, meta, a.v.GetString("base"), a.v.GetString("dist"))
	}

	entries, err := parseEntries(a.v.GetStringSlice("entry"))
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return nil, errNoInput
	}

	workDir, err := filepath.Abs(a.v.GetString("workdir"))
	if err != nil {
		return nil, fmt.Errorf("resolve workdir: %w", err)
	}

	return host.Build(ctx, host.BuildOptions{
		WorkDir: workDir,
		Entries: entries,
		Minify:  a.v.GetBool("minify"),
		Defines: platform.Defines(),
	})
}

// parseEntries turns name=source values into entry specs. Sources of a
// repeated name are appended; entries keep first-seen order.
func parseEntries(values []string) ([]host.EntrySpec, error) {
	var specs []host.EntrySpec

	index := map[string]int{}

	for _, v := range values {
		name, src, ok := strings.Cut(v, "=")
		name, src = strings.TrimSpace(name), strings.TrimSpace(src)

		if !ok || name == "" || src == "" {
			return nil, fmt.Errorf("invalid entry %q: expected name=source", v)
		}

		if i, seen := index[name]; seen {
			specs[i].Sources = append(specs[i].Sources, src)
			continue
		}

		index[name] = len(specs)
		specs = append(specs, host.EntrySpec{Name: name, Sources: []string{src}})
	}

	return specs, nil
}
