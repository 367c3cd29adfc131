package host

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Metafile is the subset of esbuild's metafile the adapter reads.
type Metafile struct {
	Inputs  map[string]MetaInput  `json:"inputs"`
	Outputs map[string]MetaOutput `json:"outputs"`
}

// MetaInput describes one input file.
type MetaInput struct {
	Bytes int `json:"bytes"`
}

// MetaOutput describes one output file.
type MetaOutput struct {
	Bytes      int          `json:"bytes"`
	Imports    []MetaImport `json:"imports"`
	EntryPoint string       `json:"entryPoint,omitempty"`
	CSSBundle  string       `json:"cssBundle,omitempty"`
}

// MetaImport is an import edge between outputs.
type MetaImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
}

// ParseMetafile decodes metafile JSON.
func ParseMetafile(data []byte) (*Metafile, error) {
	var meta Metafile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metafile: %w", err)
	}

	return &meta, nil
}

// EntryOutputs returns the output keys that are entry points, sorted.
func (m *Metafile) EntryOutputs() []string {
	var keys []string

	for k, out := range m.Outputs {
		if out.EntryPoint != "" {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	return keys
}

// EntryFiles returns the output keys an entry output needs at load time:
// statically imported outputs first (dependencies before dependents, ties in
// discovery order), then the output itself, then its CSS bundle. Import
// cycles fall back to depth-first post-order.
func (m *Metafile) EntryFiles(key string) []string {
	nodes, index := m.closure(key)

	order, err := topoSort(len(nodes), func(i int) []int {
		var deps []int
		for _, imp := range m.staticImports(nodes[i]) {
			deps = append(deps, index[imp])
		}

		return deps
	})

	var files []string

	if err != nil {
		files = m.postOrder(key)
	} else {
		for _, i := range order {
			files = append(files, nodes[i])
		}
	}

	if css := m.Outputs[key].CSSBundle; css != "" {
		if _, ok := m.Outputs[css]; ok {
			files = append(files, css)
		}
	}

	return files
}

// staticImports returns the outputs k loads eagerly.
func (m *Metafile) staticImports(k string) []string {
	var out []string

	for _, imp := range m.Outputs[k].Imports {
		if imp.External || imp.Kind == "dynamic-import" {
			continue
		}

		if _, ok := m.Outputs[imp.Path]; ok {
			out = append(out, imp.Path)
		}
	}

	return out
}

// closure lists key and everything it statically imports, in depth-first
// discovery order.
func (m *Metafile) closure(key string) ([]string, map[string]int) {
	var nodes []string

	index := map[string]int{}

	var visit func(k string)
	visit = func(k string) {
		if _, ok := index[k]; ok {
			return
		}

		index[k] = len(nodes)
		nodes = append(nodes, k)

		for _, imp := range m.staticImports(k) {
			visit(imp)
		}
	}

	visit(key)

	return nodes, index
}

func (m *Metafile) postOrder(key string) []string {
	var files []string

	seen := map[string]bool{}

	var visit func(k string)
	visit = func(k string) {
		if seen[k] {
			return
		}

		seen[k] = true

		for _, imp := range m.staticImports(k) {
			visit(imp)
		}

		files = append(files, k)
	}

	visit(key)

	return files
}

// ScriptOutputs returns every JavaScript output key, sorted.
func (m *Metafile) ScriptOutputs() []string {
	var keys []string

	for k := range m.Outputs {
		if path.Ext(k) == ".js" {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	return keys
}

// entryName derives an entry id from an entry point source path.
func entryName(entryPoint string) string {
	base := path.Base(entryPoint)
	return strings.TrimSuffix(base, path.Ext(base))
}
