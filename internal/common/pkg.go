package common

import "path"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PageRoute returns the route of an entry page, prefixed by its package root when the
// page lives in a code-split package.
// Example: PageRoute("package1", "page2") == "package1/pages/page2/index".
func PageRoute(pkgName, entry string) string {
	route := path.Join("pages", entry, "index")
	if pkgName == "" {
		return route
	}

	return pkgName + "/" + route
}

// PkgAlias returns the last element of a slash separated path.
// Returns empty string if p is empty.
func PkgAlias(p string) string {
	if p == "" {
		return ""
	}

	return path.Base(p)
}
