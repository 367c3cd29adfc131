package host

import (
	"path"
	"slices"
	"sort"
	"strings"

	"mp-generator/internal/asset"
)

// Chunk is a group of emitted files produced together.
type Chunk struct {
	Name  string
	Files []string
}

// Compilation is the mutable output set of a build. Paths are slash separated
// and relative to the output root.
type Compilation struct {
	// Entrypoints keeps host order.
	Entrypoints []asset.Entry
	// Chunks lists script chunks in a stable order.
	Chunks []Chunk

	files map[string][]byte
}

// NewCompilation creates an empty Compilation.
func NewCompilation() *Compilation {
	return &Compilation{files: map[string][]byte{}}
}

// Content returns the content of an emitted file.
func (c *Compilation) Content(p string) ([]byte, bool) {
	data, ok := c.files[p]
	return data, ok
}

// Emit adds or replaces a file.
func (c *Compilation) Emit(p string, data []byte) {
	c.files[p] = data
}

// Move renames a file and rewrites chunk file lists to match.
// It reports false when from does not exist.
func (c *Compilation) Move(from, to string) bool {
	data, ok := c.files[from]
	if !ok {
		return false
	}

	delete(c.files, from)
	c.files[to] = data

	for i := range c.Chunks {
		for j, f := range c.Chunks[i].Files {
			if f == from {
				c.Chunks[i].Files[j] = to
			}
		}
	}

	return true
}

// Paths returns all emitted paths, sorted.
func (c *Compilation) Paths() []string {
	paths := make([]string, 0, len(c.files))
	for p := range c.files {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// Files returns a copy of the output set.
func (c *Compilation) Files() map[string][]byte {
	out := make(map[string][]byte, len(c.files))
	for p, data := range c.files {
		out[p] = data
	}

	return out
}

// Size returns the total size of all emitted files.
func (c *Compilation) Size() uint64 {
	var n uint64
	for _, data := range c.files {
		n += uint64(len(data))
	}

	return n
}

// Clone returns an independent copy. File contents are shared; they are
// replaced, never mutated in place.
func (c *Compilation) Clone() *Compilation {
	out := &Compilation{files: c.Files()}

	for _, e := range c.Entrypoints {
		out.Entrypoints = append(out.Entrypoints, asset.Entry{Name: e.Name, Files: slices.Clone(e.Files)})
	}

	for _, ch := range c.Chunks {
		out.Chunks = append(out.Chunks, Chunk{Name: ch.Name, Files: slices.Clone(ch.Files)})
	}

	return out
}

// chunkName derives a chunk name from its script path.
func chunkName(p string) string {
	return strings.TrimSuffix(p, path.Ext(p))
}
