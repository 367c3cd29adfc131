package assemble

import (
	"fmt"

	"github.com/rs/zerolog"

	"mp-generator/internal/asset"
	"mp-generator/internal/common"
	"mp-generator/internal/config"
	"mp-generator/internal/diagnostic"
	"mp-generator/internal/gen"
	"mp-generator/internal/merge"
	"mp-generator/internal/partition"
	"mp-generator/internal/route"
)

// Output file names, relative to the output root.
const (
	AppScriptFile     = "app.js"
	AppStyleFile      = "app.wxss"
	AppManifestFile   = "app.json"
	ConfigFile        = "config.js"
	ProjectConfigFile = "project.config.json"
	PackageFile       = "package.json"
	SitemapFile       = "sitemap.json"
	NpmMarkerFile     = "node_modules/.miniprogram"
)

// WebviewRoute is the route of the synthetic web-view page.
const WebviewRoute = "pages/webview/index"

const configPrefix = "module.exports = "

// Input is everything assembly reads.
type Input struct {
	Options    *config.Options
	Collection *asset.Collection
	Plan       *partition.Plan
	Routes     route.Table
}

// Assembler produces the application-level files.
type Assembler struct {
	config gen.GeneratorConfig
	style  asset.StyleTransformer
	logger zerolog.Logger
}

// NewAssembler creates an Assembler. A nil style transformer keeps the app
// stylesheet as embedded.
func NewAssembler(config gen.GeneratorConfig, style asset.StyleTransformer, logger zerolog.Logger) *Assembler {
	return &Assembler{config: config, style: style, logger: logger}
}

// Assemble returns the application files in a fixed order.
func (a *Assembler) Assemble(in Input) ([]gen.GeneratedFile, diagnostic.Diagnostics, error) {
	var (
		diags diagnostic.Diagnostics
		files []gen.GeneratedFile
	)

	add := func(name string, content []byte) {
		files = append(files, gen.GeneratedFile{Filename: name, Content: content})
	}

	appJS, err := readTemplate("app.js")
	if err != nil {
		return nil, diags, err
	}

	add(AppScriptFile, appJS)

	appWxss, err := appWxssTemplate(in.Options.Generate.AppWxss)
	if err != nil {
		return nil, diags, err
	}

	add(AppStyleFile, gen.NormalizeStyle(a.style, appWxss, AppStyleFile, &diags))

	steps := []struct {
		name  string
		build func(Input) ([]byte, error)
	}{
		{AppManifestFile, a.appManifest},
		{ConfigFile, a.runtimeConfig},
		{ProjectConfigFile, a.descriptor("project.config.json", func(o *config.Options) map[string]any { return o.ProjectConfig })},
		{PackageFile, a.descriptor("package.json", func(o *config.Options) map[string]any { return o.PackageConfig })},
	}

	for _, step := range steps {
		content, err := step.build(in)
		if err != nil {
			return nil, diags, fmt.Errorf("assembling %s: %w", step.name, err)
		}

		add(step.name, content)
	}

	if in.Options.SitemapConfig != nil {
		content, err := gen.EncodeJSON(in.Options.SitemapConfig, a.config.JSONIndent)
		if err != nil {
			return nil, diags, fmt.Errorf("assembling %s: %w", SitemapFile, err)
		}

		add(SitemapFile, content)
	}

	add(NpmMarkerFile, []byte{})

	if in.Options.Redirect.UsesWebview() {
		files = append(files, WebviewPage()...)
	}

	a.logger.Debug().Int("files", len(files)).Msg("assembled application files")

	return files, diags, nil
}

// MainPages returns the routes of non-packaged entries in entry order,
// followed by the web-view route when a redirect uses it.
func MainPages(in Input) []string {
	pages := []string{}

	for _, entry := range in.Collection.EntryNames() {
		if in.Plan.PageOf(entry) == "" {
			pages = append(pages, common.PageRoute("", entry))
		}
	}

	if in.Options.Redirect.UsesWebview() {
		pages = append(pages, WebviewRoute)
	}

	return pages
}

type appSubpackage struct {
	Name  string   `json:"name"`
	Root  string   `json:"root"`
	Pages []string `json:"pages"`
}

func (a *Assembler) appManifest(in Input) ([]byte, error) {
	subpackages := []appSubpackage{}

	for _, pkg := range in.Options.Generate.Subpackages {
		sp := appSubpackage{Name: pkg.Name, Root: pkg.Root(), Pages: []string{}}

		for _, page := range pkg.Pages {
			if in.Plan.PageOf(page) == pkg.Name {
				sp.Pages = common.AppendUnique(sp.Pages, common.PageRoute("", page))
			}
		}

		subpackages = append(subpackages, sp)
	}

	preload := newObject()

	for _, rule := range in.Options.Generate.PreloadRule {
		preload.Set(common.PageRoute(in.Plan.PageOf(rule.Page), rule.Page), preloadValue(rule))
	}

	window := in.Options.App
	if window == nil {
		window = map[string]any{}
	}

	app := newObject()
	app.Set("pages", MainPages(in))
	app.Set("window", window)
	app.Set("subpackages", subpackages)
	app.Set("preloadRule", preload)
	app.SetAll(in.Options.AppExtraConfig)

	return gen.EncodeJSON(app, a.config.JSONIndent)
}

// preloadValue writes network and packages first, then any other keys sorted.
func preloadValue(rule config.PreloadRule) *object {
	v := newObject()
	if rule.Network != "" {
		v.Set("network", rule.Network)
	}

	packages := rule.Packages
	if packages == nil {
		packages = []string{}
	}

	v.Set("packages", packages)
	v.SetMissing(rule.Extra)

	return v
}

func redirectObject(r config.Redirect) *object {
	v := newObject()
	if r.NotFound != "" {
		v.Set("notFound", r.NotFound)
	}

	if r.AccessDenied != "" {
		v.Set("accessDenied", r.AccessDenied)
	}

	v.SetMissing(r.Extra)

	return v
}

// runtimeConfig fields keep the emitted key order.
type runtimeConfig struct {
	Origin       string                    `json:"origin"`
	Entry        string                    `json:"entry"`
	Router       route.Table               `json:"router"`
	Runtime      *object                   `json:"runtime"`
	Pages        map[string]map[string]any `json:"pages"`
	Redirect     *object                   `json:"redirect"`
	Optimization map[string]any            `json:"optimization"`
}

func (a *Assembler) runtimeConfig(in Input) ([]byte, error) {
	o := in.Options

	rc := runtimeConfig{
		Origin:       o.Origin,
		Entry:        o.Entry,
		Router:       in.Routes,
		Runtime:      newObject(),
		Pages:        map[string]map[string]any{},
		Redirect:     redirectObject(o.Redirect),
		Optimization: o.Optimization,
	}

	if rc.Origin == "" {
		rc.Origin = config.DefaultOrigin
	}

	if rc.Entry == "" {
		rc.Entry = config.DefaultEntry
	}

	if rc.Router == nil {
		rc.Router = route.Table{}
	}

	if rc.Optimization == nil {
		rc.Optimization = map[string]any{}
	}

	rc.Runtime.Set("subpackagesMap", in.Plan.PagePackages())
	rc.Runtime.SetAll(o.Runtime)

	for page, opts := range o.Pages {
		rc.Pages[page] = opts
	}

	for _, entry := range in.Collection.EntryNames() {
		rc.Pages[entry] = o.PageConfig(entry)
	}

	data, err := gen.EncodeJSON(rc, a.config.JSONIndent)
	if err != nil {
		return nil, err
	}

	return append([]byte(configPrefix), data...), nil
}

// descriptor builds a fixed descriptor deep-merged with a user override.
func (a *Assembler) descriptor(template string, override func(*config.Options) map[string]any) func(Input) ([]byte, error) {
	return func(in Input) ([]byte, error) {
		base, err := loadJSONTemplate(template)
		if err != nil {
			return nil, err
		}

		return gen.EncodeJSON(merge.Deep(base, override(in.Options)), a.config.JSONIndent)
	}
}
