package asset

import "slices"

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Kind classifies a compiled asset.
type Kind int

const (
	KindScript Kind = iota // script
	KindStyle              // style
)

// Entry is one finalized host entrypoint and its files, in host order.
type Entry struct {
	Name  string
	Files []string
}

// EntryAssets is the filtered, deduplicated asset list of one entry.
type EntryAssets struct {
	Entry   string
	Scripts []string
	Styles  []string
}

// All returns scripts followed by styles.
func (e EntryAssets) All() []string {
	return append(slices.Clone(e.Scripts), e.Styles...)
}

// ReverseMap maps an asset path to the entries referencing it, in the order
// they were first seen.
type ReverseMap map[string][]string

// Owners returns the entries referencing path, or nil when none were recorded.
func (r ReverseMap) Owners(path string) []string {
	return r[path]
}

// Collection is the AssetCollector output. It is built once per build and
// treated as read-only afterwards.
type Collection struct {
	// Entries keeps host entry order.
	Entries []EntryAssets
	// Owners is the reverse dependency map.
	Owners ReverseMap
	// Kinds records the kind of every collected asset.
	Kinds map[string]Kind
	// Styles holds normalized content for style assets whose content was available.
	Styles map[string][]byte
}

// Lookup returns the asset list of an entry.
func (c *Collection) Lookup(entry string) (EntryAssets, bool) {
	for _, e := range c.Entries {
		if e.Entry == entry {
			return e, true
		}
	}

	return EntryAssets{}, false
}

// EntryNames returns entry ids in host order.
func (c *Collection) EntryNames() []string {
	names := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		names = append(names, e.Entry)
	}

	return names
}

// Paths returns every collected asset path in first-seen order.
func (c *Collection) Paths() []string {
	var paths []string

	seen := make(map[string]struct{}, len(c.Kinds))

	for _, e := range c.Entries {
		for _, p := range e.All() {
			if _, ok := seen[p]; ok {
				continue
			}

			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}

	return paths
}
