package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"mp-generator/internal/asset"
	"mp-generator/internal/common"
	"mp-generator/internal/config"
	"mp-generator/internal/diagnostic"
	"mp-generator/internal/partition"
)

const phase = "generate"

// Output file extensions of a page.
const (
	ExtScript   = ".js"
	ExtMarkup   = ".wxml"
	ExtStyle    = ".wxss"
	ExtManifest = ".json"
)

// GeneratorConfig holds configuration for artifact generation.
type GeneratorConfig struct {
	// JSONIndent is the indent of generated manifests.
	JSONIndent string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{JSONIndent: "\t"}
}

// Generator produces page artifacts from a partition plan.
type Generator struct {
	config GeneratorConfig
	style  asset.StyleTransformer
	logger zerolog.Logger
}

// NewGenerator creates a Generator. A nil style transformer keeps page styles as built.
func NewGenerator(config GeneratorConfig, style asset.StyleTransformer, logger zerolog.Logger) *Generator {
	return &Generator{config: config, style: style, logger: logger}
}

// GeneratedFile is one output file.
type GeneratedFile struct {
	// Filename is slash separated and relative to the output root
	// (e.g. "package1/pages/page2/index.json").
	Filename string
	Content  []byte
}

// PageArtifacts is the artifact set of one entry.
type PageArtifacts struct {
	Entry string
	// Route is "[<package>/]pages/<entry>/index".
	Route    string
	Script   []byte
	Markup   []byte
	Style    []byte
	Manifest []byte
}

// Files returns the artifacts as output files: script, markup, style, manifest.
func (a PageArtifacts) Files() []GeneratedFile {
	return []GeneratedFile{
		{Filename: a.Route + ExtScript, Content: a.Script},
		{Filename: a.Route + ExtMarkup, Content: a.Markup},
		{Filename: a.Route + ExtStyle, Content: a.Style},
		{Filename: a.Route + ExtManifest, Content: a.Manifest},
	}
}

// Input is everything generation reads.
type Input struct {
	Collection *asset.Collection
	Plan       *partition.Plan
	Options    *config.Options
}

// Generate builds the artifacts of every collected entry, in entry order.
func (g *Generator) Generate(in Input) ([]PageArtifacts, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	pages := make([]PageArtifacts, 0, len(in.Collection.Entries))

	for _, entry := range in.Collection.Entries {
		page, err := g.generatePage(in, entry, &diags)
		if err != nil {
			return nil, diags, fmt.Errorf("generating page %s: %w", entry.Entry, err)
		}

		g.logger.Debug().
			Str("entry", entry.Entry).
			Str("route", page.Route).
			Msg("generated page")

		pages = append(pages, page)
	}

	return pages, diags, nil
}

func (g *Generator) generatePage(in Input, entry asset.EntryAssets, diags *diagnostic.Diagnostics) (PageArtifacts, error) {
	pkg := in.Plan.PageOf(entry.Entry)

	opts, err := config.DecodePageOptions(in.Options.PageConfig(entry.Entry))
	if err != nil {
		return PageArtifacts{}, err
	}

	g.checkPlacement(in.Plan, pkg, entry, diags)

	page := PageArtifacts{
		Entry:  entry.Entry,
		Route:  common.PageRoute(pkg, entry.Entry),
		Markup: []byte(PageMarkup),
	}

	if page.Script, err = g.script(in.Plan, pkg, entry, opts); err != nil {
		return PageArtifacts{}, err
	}

	page.Style = g.stylesheet(in.Plan, pkg, entry, opts, diags)

	if page.Manifest, err = g.manifest(opts); err != nil {
		return PageArtifacts{}, err
	}

	return page, nil
}

// checkPlacement reports assets relocated into a package the entry is not in.
func (g *Generator) checkPlacement(plan *partition.Plan, pkg string, entry asset.EntryAssets, diags *diagnostic.Diagnostics) {
	for _, file := range entry.All() {
		if owner := plan.PackageOf(file); owner != "" && owner != pkg {
			diags.AddWarning("cross_package_asset",
				fmt.Sprintf("asset %s lives in package %q, page is in %q", file, owner, common.PkgAlias(pkg)),
				phase, entry.Entry)
		}
	}
}

func (g *Generator) script(plan *partition.Plan, pkg string, entry asset.EntryAssets, opts config.PageOptions) ([]byte, error) {
	data := pageData{ConfigPath: partition.ConfigRef(pkg)}

	for _, js := range entry.Scripts {
		data.Requires = append(data.Requires, plan.AssetRef(pkg, js))
	}

	if opts.WindowScroll {
		data.Handlers = append(data.Handlers, pageScrollFunction)
	}

	if opts.ReachBottom {
		data.Handlers = append(data.Handlers, reachBottomFunction)
	}

	if opts.PullDownRefresh {
		data.Handlers = append(data.Handlers, pullDownRefreshFunction)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

func (g *Generator) stylesheet(
	plan *partition.Plan,
	pkg string,
	entry asset.EntryAssets,
	opts config.PageOptions,
	diags *diagnostic.Diagnostics,
) []byte {
	imports := make([]string, 0, len(entry.Styles))
	for _, css := range entry.Styles {
		imports = append(imports, `@import "`+plan.AssetRef(pkg, css)+`";`)
	}

	content := strings.Join(imports, "\n")
	if opts.BackgroundColor != "" {
		content = fmt.Sprintf("page { background-color: %s; }\n", opts.BackgroundColor) + content
	}

	return NormalizeStyle(g.style, []byte(content), entry.Entry, diags)
}

// pageManifest fields keep the emitted key order.
type pageManifest struct {
	UsingComponents       map[string]string `json:"usingComponents"`
	OnReachBottomDistance *float64          `json:"onReachBottomDistance,omitempty"`
	EnablePullDownRefresh bool              `json:"enablePullDownRefresh,omitempty"`
}

func (g *Generator) manifest(opts config.PageOptions) ([]byte, error) {
	m := pageManifest{
		UsingComponents:       map[string]string{"element": "miniprogram-element"},
		EnablePullDownRefresh: opts.PullDownRefresh,
	}

	if d, ok := opts.Distance(); ok && opts.ReachBottom {
		m.OnReachBottomDistance = &d
	}

	return EncodeJSON(m, g.config.JSONIndent)
}

// NormalizeStyle runs content through style. On failure the content is kept
// as is and a warning is recorded against subject.
func NormalizeStyle(style asset.StyleTransformer, content []byte, subject string, diags *diagnostic.Diagnostics) []byte {
	if style == nil {
		return content
	}

	out, err := style.Transform(content)
	if err != nil {
		diags.AddWarning("style_transform_failed",
			fmt.Sprintf("style normalization failed, keeping original content: %v", err), phase, subject)

		return content
	}

	return out
}
