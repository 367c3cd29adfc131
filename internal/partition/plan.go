package partition

import (
	"path"
	"sort"
)

// SharedDir is the shared store directory, relative to the output root.
const SharedDir = "common"

// Relocation records an asset moved into a package's private store.
type Relocation struct {
	Asset   string
	Package string
}

// Plan is the partition result.
type Plan struct {
	assetPackage map[string]string
	pagePackage  map[string]string
	relocations  []Relocation
}

func newPlan() *Plan {
	return &Plan{
		assetPackage: map[string]string{},
		pagePackage:  map[string]string{},
	}
}

// PackageOf returns the package an asset was relocated into, or "" when shared.
func (p *Plan) PackageOf(asset string) string {
	return p.assetPackage[asset]
}

// IsShared reports whether the asset stays in the shared store.
func (p *Plan) IsShared(asset string) bool {
	return p.assetPackage[asset] == ""
}

// PageOf returns the package a page belongs to, or "" for main-package pages.
func (p *Plan) PageOf(entry string) string {
	return p.pagePackage[entry]
}

// Relocations returns relocated assets in claim order.
func (p *Plan) Relocations() []Relocation {
	return append([]Relocation(nil), p.relocations...)
}

// PagePackages returns a copy of the page -> package map.
func (p *Plan) PagePackages() map[string]string {
	out := make(map[string]string, len(p.pagePackage))
	for k, v := range p.pagePackage {
		out[k] = v
	}

	return out
}

// PackagedPages returns the pages that belong to a package, sorted.
func (p *Plan) PackagedPages() []string {
	pages := make([]string, 0, len(p.pagePackage))
	for page := range p.pagePackage {
		pages = append(pages, page)
	}

	sort.Strings(pages)

	return pages
}

// OutputPath returns where an asset is written, relative to the output root:
// "common/<asset>" when shared, "<package>/common/<asset>" when relocated.
func (p *Plan) OutputPath(asset string) string {
	if pkg := p.assetPackage[asset]; pkg != "" {
		return path.Join(pkg, SharedDir, asset)
	}

	return path.Join(SharedDir, asset)
}

// pageDirUp is the relative path from a page directory back to the output root.
func pageDirUp(entryPkg string) string {
	if entryPkg != "" {
		return "../../../"
	}

	return "../../"
}

// AssetRef returns the path a page in entryPkg uses to reach an asset.
// The prefix is chosen per asset: a page's assets may be split between the
// shared store and its own package's store.
func (p *Plan) AssetRef(entryPkg, asset string) string {
	assetPkg := p.assetPackage[asset]
	if assetPkg != "" && assetPkg == entryPkg {
		return "../../" + SharedDir + "/" + asset
	}

	return pageDirUp(entryPkg) + p.OutputPath(asset)
}

// ConfigRef returns the path a page in entryPkg uses to reach the runtime config module.
func ConfigRef(entryPkg string) string {
	return pageDirUp(entryPkg) + "config"
}
