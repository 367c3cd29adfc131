package cssadjust

import (
	"regexp"
	"strings"
)

// tagClassPrefix is the class the renderer puts on elements created from HTML tags.
const tagClassPrefix = ".h5-"

var knownTags = map[string]bool{}

func init() {
	for _, tag := range strings.Fields(`a abbr address article aside audio b big blockquote br button
		canvas caption cite code col colgroup dd del details dfn div dl dt em fieldset figcaption
		figure footer form h1 h2 h3 h4 h5 h6 header hr i iframe img input ins kbd label legend li
		main mark nav ol optgroup option p pre q s samp section select small span strong sub
		summary sup table tbody td textarea tfoot th thead time tr tt u ul var video`) {
		knownTags[tag] = true
	}
}

// A type selector starts a compound selector: it follows the start of the
// selector, a combinator, a list comma or an opening parenthesis.
var typeSelector = regexp.MustCompile(`(^|[\s>+~,(])([a-zA-Z][a-zA-Z0-9-]*)`)

// RewriteSelector rewrites one selector prelude.
func RewriteSelector(sel string) string {
	return typeSelector.ReplaceAllStringFunc(sel, func(m string) string {
		lead, tag := splitLead(m)

		switch lower := strings.ToLower(tag); {
		case lower == "html" || lower == "body":
			return lead + "page"
		case knownTags[lower]:
			return lead + tagClassPrefix + lower
		default:
			return m
		}
	})
}

func splitLead(m string) (string, string) {
	if m == "" {
		return "", ""
	}

	switch m[0] {
	case ' ', '\t', '\n', '\r', '\f', '>', '+', '~', ',', '(':
		return m[:1], m[1:]
	default:
		return "", m
	}
}

type block int

const (
	blockRules block = iota
	blockDecls
	blockVerbatim
)

// RewriteSelectors walks a stylesheet and rewrites every style rule's selector.
// Strings and comments are copied verbatim.
func RewriteSelectors(css string) string {
	var (
		out     strings.Builder
		pending strings.Builder
		stack   = []block{blockRules}
	)

	top := func() block { return stack[len(stack)-1] }

	flush := func() {
		out.WriteString(pending.String())
		pending.Reset()
	}

	for i := 0; i < len(css); i++ {
		c := css[i]

		switch {
		case c == '"' || c == '\'':
			end := skipString(css, i)
			pending.WriteString(css[i:end])
			i = end - 1

		case c == '/' && i+1 < len(css) && css[i+1] == '*':
			flush()

			end := strings.Index(css[i+2:], "*/")
			if end < 0 {
				out.WriteString(css[i:])
				i = len(css)
			} else {
				out.WriteString(css[i : i+2+end+2])
				i += 2 + end + 1
			}

		case c == '{':
			prelude := pending.String()
			pending.Reset()

			next := blockVerbatim

			if top() == blockRules {
				trimmed := strings.TrimSpace(prelude)
				if strings.HasPrefix(trimmed, "@") {
					if verbatimAtRule(trimmed) {
						next = blockVerbatim
					} else {
						next = blockRules
					}
				} else {
					prelude = RewriteSelector(prelude)
					next = blockDecls
				}
			}

			out.WriteString(prelude)
			out.WriteByte(c)

			stack = append(stack, next)

		case c == '}':
			flush()
			out.WriteByte(c)

			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case c == ';':
			pending.WriteByte(c)
			flush()

		default:
			pending.WriteByte(c)
		}
	}

	flush()

	return out.String()
}

func verbatimAtRule(prelude string) bool {
	name := strings.ToLower(strings.TrimPrefix(prelude, "@"))
	if i := strings.IndexAny(name, " \t\n{("); i >= 0 {
		name = name[:i]
	}

	name = strings.TrimPrefix(name, "-webkit-")
	name = strings.TrimPrefix(name, "-moz-")

	return name == "keyframes" || name == "font-face" || name == "page"
}

// skipString returns the index just past the string literal starting at i.
func skipString(s string, i int) int {
	quote := s[i]

	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		}
	}

	return len(s)
}
