package config

import (
	"github.com/tiendc/go-deepcopy"
)

// Default values applied after parsing.
const (
	DefaultOrigin  = "https://miniprogram.default"
	DefaultEntry   = "/"
	DefaultAppWxss = AppWxssDefault
)

// WebviewTarget is the redirect target that requests the synthetic web-view page.
const WebviewTarget = "webview"

// Options is the root of a build options file.
type Options struct {
	// Origin is the URL origin the runtime reports to page code.
	Origin string `yaml:"origin"`
	// Entry is the default location path the runtime opens.
	Entry string `yaml:"entry"`
	// Router maps route names (entry ids) to path templates, in declaration order.
	Router Router `yaml:"router"`
	// Redirect names the pages used for unmatched or forbidden locations.
	Redirect Redirect `yaml:"redirect"`
	// Generate controls the shape of the emitted project.
	Generate Generate `yaml:"generate"`
	// App is the opaque app-level window configuration.
	App map[string]any `yaml:"app"`
	// Global options apply to every page; Pages overrides them per entry.
	Global map[string]any            `yaml:"global"`
	Pages  map[string]map[string]any `yaml:"pages"`
	// Optimization and Runtime are passed to the runtime config untouched.
	Optimization map[string]any `yaml:"optimization"`
	Runtime      map[string]any `yaml:"runtime"`
	// AppExtraConfig keys are spread over the generated app manifest.
	AppExtraConfig map[string]any `yaml:"appExtraConfig"`
	// ProjectConfig and PackageConfig are deep-merged over fixed descriptors.
	ProjectConfig map[string]any `yaml:"projectConfig"`
	PackageConfig map[string]any `yaml:"packageConfig"`
	// SitemapConfig, when set, is written as the sitemap descriptor.
	SitemapConfig map[string]any `yaml:"sitemapConfig"`
}

// Redirect holds the fallback pages.
type Redirect struct {
	NotFound     string `yaml:"notFound" json:"notFound,omitempty"`
	AccessDenied string `yaml:"accessDenied" json:"accessDenied,omitempty"`
	// Extra holds any other keys, passed through to the runtime config.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// UsesWebview reports whether either redirect target is the web-view fallback.
func (r Redirect) UsesWebview() bool {
	return r.NotFound == WebviewTarget || r.AccessDenied == WebviewTarget
}

// AppWxss selects the app stylesheet variant.
type AppWxss string

const (
	AppWxssDefault AppWxss = "default"
	AppWxssDisplay AppWxss = "display"
	AppWxssNone    AppWxss = "none"
)

// IsValid returns true for the known variants.
func (a AppWxss) IsValid() bool {
	return a == AppWxssDefault || a == AppWxssDisplay || a == AppWxssNone
}

// Generate controls code splitting and output toggles.
type Generate struct {
	Subpackages Subpackages  `yaml:"subpackages"`
	PreloadRule PreloadRules `yaml:"preloadRule"`
	AppWxss     AppWxss      `yaml:"appWxss"`
	// AfterOptimizations defers the sandbox wrap to its own stage after the
	// chunk optimize stage is sealed.
	AfterOptimizations bool `yaml:"afterOptimizations"`
}

// Route is one router entry: a route name and its raw templates.
type Route struct {
	Name string
	// Templates holds decoded YAML scalars; only non-empty strings compile.
	Templates []any
}

// Router is an ordered list of routes.
type Router []Route

// Package is a code-split package and its member pages, in declaration order.
type Package struct {
	Name  string
	Pages []string
}

// Root returns the package root directory, which is its name.
func (p Package) Root() string {
	return p.Name
}

// Subpackages is an ordered list of packages.
type Subpackages []Package

// Lookup returns the package with the given name.
func (s Subpackages) Lookup(name string) (Package, bool) {
	for _, p := range s {
		if p.Name == name {
			return p, true
		}
	}

	return Package{}, false
}

// PreloadRule asks the runtime to prefetch packages when Page becomes active.
type PreloadRule struct {
	Page     string   `yaml:"-" json:"-"`
	Network  string   `yaml:"network" json:"network,omitempty"`
	Packages []string `yaml:"packages" json:"packages"`
	// Extra holds any other keys, passed through to app.json.
	Extra map[string]any `yaml:",inline" json:"-"`
}

// PreloadRules is an ordered list of preload rules.
type PreloadRules []PreloadRule

// PageConfig returns the global options overlaid with the entry's own options.
// Page keys win; the merge is shallow. The result is a fresh map.
func (o *Options) PageConfig(entry string) map[string]any {
	merged := make(map[string]any, len(o.Global)+len(o.Pages[entry]))
	for k, v := range o.Global {
		merged[k] = v
	}

	for k, v := range o.Pages[entry] {
		merged[k] = v
	}

	return merged
}

// Clone returns a deep copy of the options. A build works on a clone so the
// caller's options cannot change under it.
func (o *Options) Clone() (*Options, error) {
	var out Options
	if err := deepcopy.Copy(&out, *o); err != nil {
		return nil, err
	}

	return &out, nil
}
