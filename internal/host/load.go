package host

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"mp-generator/internal/asset"
)

// LoadMetafile builds a Compilation from an esbuild metafile and the
// directory it wrote outputs to. Output keys in the metafile are resolved
// relative to the metafile's working directory, which is baseDir. Entry ids are
// the entry point base names without extension.
func LoadMetafile(fs afero.Fs, metafilePath, baseDir, distDir string) (*Compilation, error) {
	data, err := afero.ReadFile(fs, metafilePath)
	if err != nil {
		return nil, fmt.Errorf("read metafile: %w", err)
	}

	meta, err := ParseMetafile(data)
	if err != nil {
		return nil, err
	}

	read := func(key string) ([]byte, error) {
		return afero.ReadFile(fs, filepath.Join(baseDir, filepath.FromSlash(key)))
	}

	var names []entryNaming
	for _, key := range meta.EntryOutputs() {
		names = append(names, entryNaming{name: entryName(meta.Outputs[key].EntryPoint), keys: []string{key}})
	}

	return fromMetafile(meta, toSlash(distDir), names, read)
}

type entryNaming struct {
	name string
	keys []string
}

func fromMetafile(meta *Metafile, dist string, entries []entryNaming, read func(string) ([]byte, error)) (*Compilation, error) {
	c := NewCompilation()

	rel := func(key string) (string, error) {
		if dist == "" || dist == "." {
			return key, nil
		}

		if !strings.HasPrefix(key, dist+"/") {
			return "", fmt.Errorf("output %q is outside %q", key, dist)
		}

		return strings.TrimPrefix(key, dist+"/"), nil
	}

	for key := range meta.Outputs {
		name, err := rel(key)
		if err != nil {
			return nil, err
		}

		content, err := read(key)
		if err != nil {
			return nil, fmt.Errorf("read output %q: %w", key, err)
		}

		c.Emit(name, content)
	}

	for _, e := range entries {
		entry := asset.Entry{Name: e.name}

		for _, key := range e.keys {
			for _, f := range meta.EntryFiles(key) {
				name, err := rel(f)
				if err != nil {
					return nil, err
				}

				entry.Files = append(entry.Files, name)
			}
		}

		c.Entrypoints = append(c.Entrypoints, entry)
	}

	for _, key := range meta.ScriptOutputs() {
		name, err := rel(key)
		if err != nil {
			return nil, err
		}

		c.Chunks = append(c.Chunks, Chunk{Name: chunkName(name), Files: []string{name}})
	}

	return c, nil
}

func toSlash(dir string) string {
	return strings.TrimSuffix(path.Clean(filepath.ToSlash(dir)), "/")
}
