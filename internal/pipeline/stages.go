package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"

	"mp-generator/internal/asset"
	"mp-generator/internal/assemble"
	"mp-generator/internal/config"
	"mp-generator/internal/gen"
	"mp-generator/internal/host"
	"mp-generator/internal/partition"
	"mp-generator/internal/route"
	"mp-generator/internal/sandbox"
)

// Stage and step names, as recorded in Result.Trace.
const (
	StageCollect   = "collect"
	StagePartition = "partition"
	StageRoute     = "route"
	StageGenerate  = "generate"
	StageAssemble  = "assemble"
	StageEmit      = "emit"
	StageOptimize  = "optimize"
	StageWrap      = "wrap"

	StepMinify = "minify"
	StepWrap   = "wrap"
	StepSeal   = "seal"
)

type step struct {
	name string
	run  func(b *build, ctx context.Context) error
}

type stage struct {
	name  string
	steps []step
}

// build is the mutable state of one Run.
type build struct {
	cfg    Config
	logger zerolog.Logger
	opts   *config.Options
	comp   *host.Compilation
	result *Result

	appFiles []gen.GeneratedFile
	wrapper  *sandbox.Wrapper
}

func single(name string, run func(b *build, ctx context.Context) error) stage {
	return stage{name: name, steps: []step{{name: name, run: run}}}
}

// stages returns the phase list. The wrap placement is decided here, once.
func (d *Driver) stages(afterOptimizations bool) []stage {
	optimize := stage{name: StageOptimize}
	if d.cfg.Minify {
		optimize.steps = append(optimize.steps, step{name: StepMinify, run: (*build).minify})
	}

	wrap := step{name: StepWrap, run: (*build).wrap}
	seal := step{name: StepSeal, run: (*build).seal}

	stages := []stage{
		single(StageCollect, (*build).collect),
		single(StagePartition, (*build).partition),
		single(StageRoute, (*build).compileRoutes),
		single(StageGenerate, (*build).generate),
		single(StageAssemble, (*build).assemble),
		single(StageEmit, (*build).emit),
	}

	if afterOptimizations {
		optimize.steps = append(optimize.steps, seal)

		return append(stages, optimize, stage{name: StageWrap, steps: []step{wrap}})
	}

	optimize.steps = append(optimize.steps, wrap, seal)

	return append(stages, optimize)
}

func (b *build) runStage(ctx context.Context, st stage) error {
	b.logger.Debug().Str("stage", st.name).Msg("stage started")

	for _, s := range st.steps {
		b.result.Trace = append(b.result.Trace, st.name+":"+s.name)

		if err := s.run(b, ctx); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}

	return nil
}

func (b *build) collect(context.Context) error {
	diags := config.Validate(b.opts, entryNames(b.comp.Entrypoints))
	b.result.Diagnostics.Merge(*diags)

	col, cd := asset.NewCollector(b.cfg.Style, b.logger).Collect(b.comp.Entrypoints, b.comp)
	b.result.Diagnostics.Merge(cd)
	b.result.Collection = col

	return nil
}

func (b *build) partition(context.Context) error {
	plan, diags := partition.NewEngine(b.logger).Partition(b.opts.Generate.Subpackages, b.result.Collection)
	b.result.Diagnostics.Merge(diags)
	b.result.Plan = plan

	return nil
}

func (b *build) compileRoutes(context.Context) error {
	table, diags := route.NewCompiler(b.cfg.Route, b.logger).Compile(b.opts.Router)
	b.result.Diagnostics.Merge(diags)
	b.result.Routes = table

	return nil
}

func (b *build) generate(context.Context) error {
	pages, diags, err := gen.NewGenerator(b.cfg.Generator, b.cfg.Style, b.logger).Generate(gen.Input{
		Collection: b.result.Collection,
		Plan:       b.result.Plan,
		Options:    b.opts,
	})
	b.result.Diagnostics.Merge(diags)
	b.result.Pages = pages

	return err
}

func (b *build) assemble(context.Context) error {
	files, diags, err := assemble.NewAssembler(b.cfg.Generator, b.cfg.Style, b.logger).Assemble(assemble.Input{
		Options:    b.opts,
		Collection: b.result.Collection,
		Plan:       b.result.Plan,
		Routes:     b.result.Routes,
	})
	b.result.Diagnostics.Merge(diags)
	b.appFiles = files

	return err
}

// emit moves host outputs into the shared or package stores, replaces style
// assets with their normalized content and adds the generated files.
func (b *build) emit(context.Context) error {
	plan := b.result.Plan

	for _, p := range b.comp.Paths() {
		b.comp.Move(p, plan.OutputPath(p))
	}

	for file, content := range b.result.Collection.Styles {
		b.comp.Emit(plan.OutputPath(file), content)
	}

	for _, page := range b.result.Pages {
		for _, f := range page.Files() {
			b.comp.Emit(f.Filename, f.Content)
		}
	}

	for _, f := range b.appFiles {
		b.comp.Emit(f.Filename, f.Content)
	}

	return nil
}

func (b *build) minify(context.Context) error {
	for _, chunk := range b.comp.Chunks {
		for _, file := range chunk.Files {
			if !sandbox.IsScript(file) {
				continue
			}

			content, ok := b.comp.Content(file)
			if !ok {
				continue
			}

			res := api.Transform(string(content), api.TransformOptions{
				Loader:           api.LoaderJS,
				MinifyWhitespace: true,
				MinifySyntax:     true,
				LogLevel:         api.LogLevelSilent,
			})
			if len(res.Errors) > 0 {
				return fmt.Errorf("minify %s: %s", file, res.Errors[0].Text)
			}

			b.comp.Emit(file, res.Code)
		}
	}

	return nil
}

func (b *build) wrap(context.Context) error {
	if b.wrapper == nil {
		b.wrapper = sandbox.NewWrapper(b.logger)
	}

	wrapped, err := b.wrapper.WrapChunks(b.comp)
	b.result.Wrapped = wrapped

	return err
}

// seal fixes a content hash per chunk. Nothing may change chunk content
// after the optimize stage is sealed except the deferred wrap.
func (b *build) seal(context.Context) error {
	for _, chunk := range b.comp.Chunks {
		b.result.ChunkHashes[chunk.Name] = ChunkHash(b.comp, chunk)
	}

	return nil
}

// ChunkHash hashes a chunk's file contents in file order.
func ChunkHash(c *host.Compilation, chunk host.Chunk) string {
	h := sha256.New()

	for _, file := range chunk.Files {
		content, _ := c.Content(file)
		h.Write([]byte(file))
		h.Write([]byte{0})
		h.Write(content)
	}

	return hex.EncodeToString(h.Sum(nil))[:16]
}

func (b *build) finish() {
	for _, p := range b.comp.Paths() {
		content, _ := b.comp.Content(p)
		b.result.Files = append(b.result.Files, gen.GeneratedFile{Filename: p, Content: content})
	}
}

func entryNames(entries []asset.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}

	return names
}

// Lookup returns a file of the result by name.
func (r *Result) Lookup(name string) ([]byte, bool) {
	for _, f := range r.Files {
		if f.Filename == name {
			return f.Content, true
		}
	}

	return nil, false
}

// HasPrefix reports whether any output file name starts with prefix.
func (r *Result) HasPrefix(prefix string) bool {
	for _, f := range r.Files {
		if strings.HasPrefix(f.Filename, prefix) {
			return true
		}
	}

	return false
}
