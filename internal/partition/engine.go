package partition

import (
	"fmt"

	"github.com/rs/zerolog"

	"mp-generator/internal/asset"
	"mp-generator/internal/common"
	"mp-generator/internal/config"
	"mp-generator/internal/diagnostic"
)

const phase = "partition"

// Engine computes a Plan from package declarations and collected assets.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a partition Engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Partition runs the claim walk. It never fails: assets missing from the
// reverse map impose no constraint and stay shared.
func (e *Engine) Partition(pkgs config.Subpackages, col *asset.Collection) (*Plan, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	plan := newPlan()

	for _, pkg := range pkgs {
		members := e.claimPages(plan, pkg, &diags)

		for _, entry := range members {
			assets, ok := col.Lookup(entry)
			if !ok {
				continue
			}

			for _, file := range assets.All() {
				if _, claimed := plan.assetPackage[file]; claimed {
					continue
				}

				owners := col.Owners.Owners(file)
				if len(owners) == 0 || !common.ContainsAll(members, owners) {
					continue
				}

				plan.assetPackage[file] = pkg.Name
				plan.relocations = append(plan.relocations, Relocation{Asset: file, Package: pkg.Name})

				e.logger.Debug().
					Str("asset", file).
					Str("package", pkg.Name).
					Msg("relocated package-private asset")
			}
		}
	}

	return plan, diags
}

// claimPages records page ownership for pkg and returns the pages it owns.
// A page already owned by an earlier package stays there.
func (e *Engine) claimPages(plan *Plan, pkg config.Package, diags *diagnostic.Diagnostics) []string {
	members := make([]string, 0, len(pkg.Pages))

	for _, page := range pkg.Pages {
		if owner, ok := plan.pagePackage[page]; ok {
			if owner != pkg.Name {
				diags.AddInfo("page_kept_in_first_package",
					fmt.Sprintf("page %q stays in package %q", page, owner), phase, page)
			}

			continue
		}

		plan.pagePackage[page] = pkg.Name
		members = append(members, page)
	}

	return members
}
