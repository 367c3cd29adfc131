package gen

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// EncodeJSON marshals v with the given indent. An empty indent gives compact
// output. HTML characters are not escaped.
func EncodeJSON(v any, indent string) ([]byte, error) {
	if indent == "" {
		return json.MarshalWithOption(v, json.DisableHTMLEscape())
	}

	return json.MarshalIndentWithOption(v, "", indent, json.DisableHTMLEscape())
}

// WriteFiles writes all generated files under outputDir, creating directories
// as needed.
func WriteFiles(fs afero.Fs, files []GeneratedFile, outputDir string) error {
	if err := fs.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, filepath.FromSlash(file.Filename))

		if dir := path.Dir(file.Filename); dir != "." {
			if err := fs.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
				return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
			}
		}

		if err := afero.WriteFile(fs, outputPath, file.Content, filePerm); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
