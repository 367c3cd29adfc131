// Package route compiles declared path templates into pattern records the
// mini-program runtime router can use.
//
// Template grammar (path-to-regexp 1.x):
//   - literal text is matched verbatim (case-insensitive unless Sensitive)
//   - ":name" binds one or more non-delimiter characters
//   - ":name(\\d+)" binds with a custom pattern
//   - "(...)" is an unnamed parameter, keyed by its index
//   - "?", "*", "+" make the preceding parameter optional or repeatable
//   - "*" alone matches anything
//   - "\\" escapes the next character
//
// Compiled sources are ECMAScript regular expressions. They are matched here
// with regexp2 in ECMAScript mode because the trailing-delimiter rule uses a
// lookahead that RE2 does not support.
package route
