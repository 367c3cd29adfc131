package config

import (
	"fmt"
	"slices"

	"mp-generator/internal/diagnostic"
	"mp-generator/internal/match"
)

const phase = "config"

// Validate checks options against the entry ids produced by the host build.
// Nothing here fails the build; every finding is a warning and the pipeline
// degrades the way the runtime would (unknown pages are ignored, the first
// package listing a page owns it).
func Validate(o *Options, entries []string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if o == nil {
		res.AddError("options_is_nil", "options are nil", phase, "")
		return res
	}

	if o.Generate.AppWxss != "" && !o.Generate.AppWxss.IsValid() {
		res.AddWarning("invalid_app_wxss",
			fmt.Sprintf("unknown appWxss variant %q, using %q", o.Generate.AppWxss, DefaultAppWxss),
			phase, string(o.Generate.AppWxss))
	}

	owner := map[string]string{}

	for _, pkg := range o.Generate.Subpackages {
		for _, page := range pkg.Pages {
			if !slices.Contains(entries, page) {
				res.AddWarning("unknown_package_page",
					fmt.Sprintf("package %q lists page %q, which has no entry", pkg.Name, page),
					phase, page, match.Suggest(page, entries, 3)...)
			}

			if first, ok := owner[page]; ok && first != pkg.Name {
				res.AddWarning("page_in_multiple_packages",
					fmt.Sprintf("page %q is listed by %q and %q; %q owns it", page, first, pkg.Name, first),
					phase, page)

				continue
			}

			owner[page] = pkg.Name
		}
	}

	for _, rule := range o.Generate.PreloadRule {
		if !slices.Contains(entries, rule.Page) {
			res.AddWarning("unknown_preload_page",
				fmt.Sprintf("preload rule for page %q, which has no entry", rule.Page),
				phase, rule.Page, match.Suggest(rule.Page, entries, 3)...)
		}

		for _, name := range rule.Packages {
			if _, ok := o.Generate.Subpackages.Lookup(name); !ok {
				res.AddWarning("unknown_preload_package",
					fmt.Sprintf("preload rule for page %q names undeclared package %q", rule.Page, name),
					phase, name, match.Suggest(name, packageNames(o.Generate.Subpackages), 3)...)
			}
		}
	}

	for _, target := range []string{o.Redirect.NotFound, o.Redirect.AccessDenied} {
		if target == "" || target == WebviewTarget {
			continue
		}

		if !slices.Contains(entries, target) {
			res.AddWarning("unknown_redirect_page",
				fmt.Sprintf("redirect target %q has no entry", target),
				phase, target, match.Suggest(target, entries, 3)...)
		}
	}

	return res
}

func packageNames(pkgs Subpackages) []string {
	names := make([]string, 0, len(pkgs))
	for _, p := range pkgs {
		names = append(names, p.Name)
	}

	return names
}
