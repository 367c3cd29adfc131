package asset

import (
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"mp-generator/internal/common"
	"mp-generator/internal/diagnostic"
)

const phase = "collect"

var extRegex = regexp.MustCompile(`\.(css|js|wxss)(\?|$)`)

// Classify returns the kind of a compiled file, or false when the file is
// neither a script nor a style.
func Classify(path string) (Kind, bool) {
	m := extRegex.FindStringSubmatch(path)
	if m == nil {
		return 0, false
	}

	if m[1] == "js" {
		return KindScript, true
	}

	return KindStyle, true
}

// Source gives read access to compiled file contents.
type Source interface {
	Content(path string) ([]byte, bool)
}

// StyleTransformer normalizes finalized style content for the target platform.
type StyleTransformer interface {
	Transform(content []byte) ([]byte, error)
}

// Collector builds a Collection from host entries.
type Collector struct {
	style  StyleTransformer
	logger zerolog.Logger
}

// NewCollector creates a Collector. A nil style transformer keeps style content as is.
func NewCollector(style StyleTransformer, logger zerolog.Logger) *Collector {
	return &Collector{style: style, logger: logger}
}

// Collect filters, deduplicates and classifies each entry's files and fills the
// reverse dependency map. Style assets found in src are normalized once each.
func (c *Collector) Collect(entries []Entry, src Source) (*Collection, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	col := &Collection{
		Owners: ReverseMap{},
		Kinds:  map[string]Kind{},
		Styles: map[string][]byte{},
	}

	for _, entry := range entries {
		assets := EntryAssets{Entry: entry.Name}
		seen := map[string]struct{}{}

		for _, file := range entry.Files {
			kind, ok := Classify(file)
			if !ok {
				continue
			}

			if _, dup := seen[file]; dup {
				continue
			}

			seen[file] = struct{}{}

			switch kind {
			case KindScript:
				assets.Scripts = append(assets.Scripts, file)
			case KindStyle:
				assets.Styles = append(assets.Styles, file)
			}

			col.Owners[file] = common.AppendUnique(col.Owners[file], entry.Name)

			if _, known := col.Kinds[file]; known {
				continue
			}

			col.Kinds[file] = kind

			if kind == KindStyle {
				c.normalizeStyle(col, file, src, &diags)
			}
		}

		c.logger.Debug().
			Str("entry", entry.Name).
			Int("scripts", len(assets.Scripts)).
			Int("styles", len(assets.Styles)).
			Msg("collected entry assets")

		col.Entries = append(col.Entries, assets)
	}

	return col, diags
}

func (c *Collector) normalizeStyle(col *Collection, file string, src Source, diags *diagnostic.Diagnostics) {
	if src == nil {
		return
	}

	content, ok := src.Content(file)
	if !ok {
		return
	}

	if c.style == nil {
		col.Styles[file] = content
		return
	}

	out, err := c.style.Transform(content)
	if err != nil {
		diags.AddWarning("style_transform_failed",
			fmt.Sprintf("style normalization failed, keeping original content: %v", err), phase, file)

		col.Styles[file] = content

		return
	}

	col.Styles[file] = out
}
