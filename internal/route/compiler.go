package route

import (
	"fmt"

	"github.com/rs/zerolog"

	"mp-generator/internal/config"
	"mp-generator/internal/diagnostic"
)

const phase = "route"

// Compiler compiles a router declaration into a Table.
type Compiler struct {
	opts   Options
	logger zerolog.Logger
}

// NewCompiler creates a Compiler.
func NewCompiler(opts Options, logger zerolog.Logger) *Compiler {
	return &Compiler{opts: opts, logger: logger}
}

// Compile compiles every template of every route. Non-string and empty
// templates are skipped with an info diagnostic; templates whose source fails
// to compile are skipped with a warning.
func (c *Compiler) Compile(router config.Router) (Table, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	table := make(Table, 0, len(router))

	for _, r := range router {
		compiled := Route{Name: r.Name}

		for i, raw := range r.Templates {
			template, ok := raw.(string)
			if !ok || template == "" {
				diags.AddInfo("route_template_skipped",
					fmt.Sprintf("template #%d is %s, not a non-empty string", i, describe(raw)), phase, r.Name)

				continue
			}

			p, err := Compile(template, c.opts)
			if err != nil {
				diags.AddWarning("route_template_invalid", err.Error(), phase, r.Name)
				continue
			}

			compiled.Patterns = append(compiled.Patterns, p)
		}

		c.logger.Debug().
			Str("route", r.Name).
			Int("patterns", len(compiled.Patterns)).
			Msg("compiled route")

		table = append(table, compiled)
	}

	return table, diags
}

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return "empty"
	default:
		return fmt.Sprintf("%T", v)
	}
}
