package cssadjust

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// Adjuster implements asset.StyleTransformer.
type Adjuster struct {
	// Minify prints compact output.
	Minify bool
}

// New creates an Adjuster with readable output.
func New() *Adjuster {
	return &Adjuster{}
}

// Transform normalizes content. Empty input is returned as is.
func (a *Adjuster) Transform(content []byte) ([]byte, error) {
	if len(strings.TrimSpace(string(content))) == 0 {
		return content, nil
	}

	result := api.Transform(string(content), api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: a.Minify,
		LogLevel:         api.LogLevelSilent,
	})

	if len(result.Errors) > 0 {
		msgs := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			msgs = append(msgs, msg.Text)
		}

		return nil, fmt.Errorf("css transform failed: %s", strings.Join(msgs, "; "))
	}

	return []byte(RewriteSelectors(string(result.Code))), nil
}
