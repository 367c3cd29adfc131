package route

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
)

// Options tune how templates compile. The zero value matches the runtime
// defaults: case-insensitive, optional trailing delimiter, anchored at the end.
type Options struct {
	Sensitive bool
	Strict    bool
	NoEnd     bool
	Delimiter string
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return defaultDelimiter
	}

	return o.Delimiter
}

// flags returns the flag string in g, i, m order.
func (o Options) flags() string {
	if o.Sensitive {
		return ""
	}

	return "i"
}

// Pattern is one compiled template.
type Pattern struct {
	// Template is the raw path template.
	Template string `json:"-"`
	// Source is the ECMAScript pattern source.
	Source string `json:"regexp"`
	// Flags holds the pattern flags in g, i, m order.
	Flags string `json:"options"`
	// Params are the parameter names in capture order. Unnamed groups are
	// named by their index.
	Params []string `json:"-"`

	re *regexp2.Regexp
}

// Compile turns a single template into a Pattern.
func Compile(template string, opts Options) (*Pattern, error) {
	tokens := parse(template)

	p := &Pattern{
		Template: template,
		Source:   toSource(tokens, opts),
		Flags:    opts.flags(),
	}

	for _, tok := range tokens {
		if !tok.isLiteral() {
			p.Params = append(p.Params, tok.Name)
		}
	}

	re, err := regexp2.Compile(p.Source, regexOptions(p.Flags))
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", template, err)
	}

	p.re = re

	return p, nil
}

func regexOptions(flags string) regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.ECMAScript)
	if strings.Contains(flags, "i") {
		opts |= regexp2.IgnoreCase
	}

	if strings.Contains(flags, "m") {
		opts |= regexp2.Multiline
	}

	return opts
}

// Match tests path against the pattern and returns the bound parameters.
// Parameters that did not participate in the match are absent.
func (p *Pattern) Match(path string) (map[string]string, bool) {
	if p.re == nil {
		return nil, false
	}

	m, err := p.re.FindStringMatch(path)
	if err != nil || m == nil {
		return nil, false
	}

	params := make(map[string]string, len(p.Params))
	groups := m.Groups()

	for i, name := range p.Params {
		if i+1 >= len(groups) {
			break
		}

		g := groups[i+1]
		if len(g.Captures) == 0 {
			continue
		}

		params[name] = g.String()
	}

	return params, true
}
