package route

import (
	"regexp"
	"strconv"
	"strings"
)

const defaultDelimiter = "/"

// Groups: 1 escaped char, 2 prefix, 3 name, 4 custom pattern, 5 unnamed group,
// 6 modifier, 7 bare asterisk.
var pathRegexp = regexp.MustCompile(
	`(\\.)|([/.])?(?:(?::(\w+)(?:\(((?:\\.|[^\\()])+)\))?|\(((?:\\.|[^\\()])+)\))([+*?])?|(\*))`)

var (
	escapeStringRe = regexp.MustCompile(`([.+*?=^!:${}()[\]|/\\])`)
	escapeGroupRe  = regexp.MustCompile(`([=!:$/()])`)
)

// token is either a literal (Literal != "") or a parameter.
type token struct {
	Literal   string
	Name      string
	Prefix    string
	Delimiter string
	Optional  bool
	Repeat    bool
	Partial   bool
	Asterisk  bool
	Pattern   string
}

func (t token) isLiteral() bool {
	return t.Name == ""
}

func escapeString(s string) string {
	return escapeStringRe.ReplaceAllString(s, `\${1}`)
}

func escapeGroup(s string) string {
	return escapeGroupRe.ReplaceAllString(s, `\${1}`)
}

// parse splits a template into literal and parameter tokens.
func parse(str string) []token {
	var (
		tokens []token
		key    int
		index  int
		path   strings.Builder
	)

	group := func(m []int, n int) string {
		if m[2*n] < 0 {
			return ""
		}

		return str[m[2*n]:m[2*n+1]]
	}

	for _, m := range pathRegexp.FindAllStringSubmatchIndex(str, -1) {
		path.WriteString(str[index:m[0]])
		index = m[1]

		if escaped := group(m, 1); escaped != "" {
			path.WriteString(escaped[1:])
			continue
		}

		var next string
		if index < len(str) {
			next = str[index : index+1]
		}

		prefix := group(m, 2)
		name := group(m, 3)
		capture := group(m, 4)
		unnamed := group(m, 5)
		modifier := group(m, 6)
		asterisk := m[14] >= 0

		if path.Len() > 0 {
			tokens = append(tokens, token{Literal: path.String()})
			path.Reset()
		}

		delimiter := prefix
		if delimiter == "" {
			delimiter = defaultDelimiter
		}

		if name == "" {
			name = strconv.Itoa(key)
			key++
		}

		pattern := capture
		if pattern == "" {
			pattern = unnamed
		}

		switch {
		case pattern != "":
			pattern = escapeGroup(pattern)
		case asterisk:
			pattern = ".*"
		default:
			pattern = "[^" + escapeString(delimiter) + "]+?"
		}

		tokens = append(tokens, token{
			Name:      name,
			Prefix:    prefix,
			Delimiter: delimiter,
			Optional:  modifier == "?" || modifier == "*",
			Repeat:    modifier == "+" || modifier == "*",
			Partial:   prefix != "" && next != "" && next != prefix,
			Asterisk:  asterisk,
			Pattern:   pattern,
		})
	}

	if index < len(str) {
		path.WriteString(str[index:])
	}

	if path.Len() > 0 {
		tokens = append(tokens, token{Literal: path.String()})
	}

	return tokens
}

// toSource turns tokens into an ECMAScript pattern source.
func toSource(tokens []token, opts Options) string {
	var route strings.Builder

	for _, tok := range tokens {
		if tok.isLiteral() {
			route.WriteString(escapeString(tok.Literal))
			continue
		}

		prefix := escapeString(tok.Prefix)
		capture := "(?:" + tok.Pattern + ")"

		if tok.Repeat {
			capture += "(?:" + prefix + capture + ")*"
		}

		switch {
		case tok.Optional && !tok.Partial:
			capture = "(?:" + prefix + "(" + capture + "))?"
		case tok.Optional:
			capture = prefix + "(" + capture + ")?"
		default:
			capture = prefix + "(" + capture + ")"
		}

		route.WriteString(capture)
	}

	delimiter := escapeString(opts.delimiter())
	src := route.String()
	endsWithDelimiter := strings.HasSuffix(src, delimiter)

	if !opts.Strict {
		src = strings.TrimSuffix(src, delimiter) + "(?:" + delimiter + "(?=$))?"
	}

	switch {
	case !opts.NoEnd:
		src += "$"
	case opts.Strict && endsWithDelimiter:
	default:
		src += "(?=" + delimiter + "|$)"
	}

	return "^" + src
}
