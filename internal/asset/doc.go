// Package asset derives per-entry asset lists and the global reverse
// dependency map (asset -> entries that reference it) from the host
// compilation's finalized entry files.
//
// Only script and style files are kept; "wxss" files count as styles.
// Query strings are allowed after the extension ("main.css?v=3").
// Everything else (source maps, images, fonts) is ignored without comment.
package asset
