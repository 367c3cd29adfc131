package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"mp-generator/internal/asset"
	"mp-generator/internal/config"
	"mp-generator/internal/diagnostic"
	"mp-generator/internal/gen"
	"mp-generator/internal/host"
	"mp-generator/internal/partition"
	"mp-generator/internal/route"
)

// Config holds driver settings that do not come from the options file.
type Config struct {
	Generator gen.GeneratorConfig
	Route     route.Options
	// Style normalizes style assets and generated stylesheets. Nil keeps them as is.
	Style asset.StyleTransformer
	// Minify compacts chunk scripts during the optimize stage.
	Minify bool
}

// DefaultConfig returns the default driver configuration.
func DefaultConfig() Config {
	return Config{Generator: gen.DefaultGeneratorConfig()}
}

// Result is the outcome of one build.
type Result struct {
	// Files is the final output set, sorted by file name.
	Files       []gen.GeneratedFile
	Collection  *asset.Collection
	Plan        *partition.Plan
	Routes      route.Table
	Pages       []gen.PageArtifacts
	Diagnostics diagnostic.Diagnostics
	// ChunkHashes are sealed at the end of the optimize stage.
	ChunkHashes map[string]string
	// Wrapped lists the sandboxed chunk scripts.
	Wrapped []string
	// Trace lists executed steps as "stage:step".
	Trace []string
}

// Size returns the total size of the output set.
func (r *Result) Size() uint64 {
	var n uint64
	for _, f := range r.Files {
		n += uint64(len(f.Content))
	}

	return n
}

// Driver runs builds.
type Driver struct {
	cfg    Config
	logger zerolog.Logger
}

// New creates a Driver.
func New(cfg Config, logger zerolog.Logger) *Driver {
	return &Driver{cfg: cfg, logger: logger}
}

// Run builds the mini-program project from a host compilation. Neither opts
// nor comp is modified. Cancellation is checked between phases.
func (d *Driver) Run(ctx context.Context, opts *config.Options, comp *host.Compilation) (*Result, error) {
	if opts == nil || comp == nil {
		return nil, fmt.Errorf("pipeline: options and compilation are required")
	}

	snapshot, err := opts.Clone()
	if err != nil {
		return nil, fmt.Errorf("snapshot options: %w", err)
	}

	b := &build{
		cfg:    d.cfg,
		logger: d.logger,
		opts:   snapshot,
		comp:   comp.Clone(),
		result: &Result{ChunkHashes: map[string]string{}},
	}

	for _, st := range d.stages(snapshot.Generate.AfterOptimizations) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("before %s: %w", st.name, err)
		}

		if err := b.runStage(ctx, st); err != nil {
			return nil, err
		}
	}

	b.finish()

	d.logger.Debug().
		Int("files", len(b.result.Files)).
		Int("warnings", len(b.result.Diagnostics.Warnings)).
		Msg("build finished")

	return b.result, nil
}
