// Package gen synthesizes the per-page artifacts of the mini-program project.
//
// Every entry gets four files under its route "[<package>/]pages/<entry>/index":
//   - .js: the page script. It loads the runtime config and defines an init
//     function that requires each script asset and calls it with
//     (window, document). Scroll, reach-bottom and pull-down-refresh handlers
//     are emitted only when the page enables them.
//   - .wxml: a fixed element stub.
//   - .wxss: one @import per style asset, optionally preceded by a page
//     background rule, run through the style normalizer.
//   - .json: the page manifest.
//
// Generation uses text/template and goccy/go-json; output is deterministic.
package gen
