// Package diagnostic provides structured warnings, errors, and infos collected
// while a build runs.
//
// Most user-data problems (skipped route templates, packages naming unknown
// pages, preload rules without a page) degrade silently: the build still
// emits every artifact, and the problem is recorded here so the CLI can
// report it.
package diagnostic
