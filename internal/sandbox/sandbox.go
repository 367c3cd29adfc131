// Package sandbox wraps finalized script chunks so they run inside the page's
// simulated window. Each script becomes a module exporting
// function(window, document), with a fixed allow-list of globals re-bound
// from window.
package sandbox

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"mp-generator/internal/host"
)

// Globals are re-declared from window at the top of every wrapped script.
var Globals = []string{"navigator", "HTMLElement", "localStorage", "sessionStorage", "location"}

// Footer closes the wrapper function.
const Footer = "}"

// ErrAlreadyWrapped is returned when a compilation is wrapped twice.
var ErrAlreadyWrapped = errors.New("chunks already wrapped")

// Header opens the wrapper function and binds Globals.
func Header() string {
	decls := make([]string, 0, len(Globals))
	for _, g := range Globals {
		decls = append(decls, fmt.Sprintf("var %s = window.%s", g, g))
	}

	return "module.exports = function(window, document) {" + strings.Join(decls, ";") + ";"
}

// Wrap returns content between Header and Footer.
func Wrap(content []byte) []byte {
	header := Header()

	out := make([]byte, 0, len(header)+len(content)+len(Footer))
	out = append(out, header...)
	out = append(out, content...)

	return append(out, Footer...)
}

// IsScript reports whether a chunk file is wrapped.
func IsScript(file string) bool {
	return path.Ext(file) == ".js"
}

// Wrapper wraps the script files of every chunk of one compilation.
type Wrapper struct {
	logger zerolog.Logger
	done   bool
}

// NewWrapper creates a Wrapper for a single build.
func NewWrapper(logger zerolog.Logger) *Wrapper {
	return &Wrapper{logger: logger}
}

// WrapChunks wraps every .js file listed by the compilation's chunks. A file
// listed by several chunks is wrapped once. A second call fails with
// ErrAlreadyWrapped. It returns the wrapped files in chunk order.
func (w *Wrapper) WrapChunks(c *host.Compilation) ([]string, error) {
	if w.done {
		return nil, ErrAlreadyWrapped
	}

	w.done = true

	var wrapped []string

	seen := map[string]bool{}

	for _, chunk := range c.Chunks {
		for _, file := range chunk.Files {
			if !IsScript(file) || seen[file] {
				continue
			}

			seen[file] = true

			content, ok := c.Content(file)
			if !ok {
				return wrapped, fmt.Errorf("chunk %s: file %s not emitted", chunk.Name, file)
			}

			c.Emit(file, Wrap(content))
			wrapped = append(wrapped, file)
		}
	}

	w.logger.Debug().Int("files", len(wrapped)).Msg("wrapped chunk scripts")

	return wrapped, nil
}
