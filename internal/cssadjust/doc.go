// Package cssadjust is the default style normalizer. It reprints a stylesheet
// through esbuild's CSS loader and then rewrites selectors for the
// mini-program renderer: html and body become page, and element selectors for
// known HTML tags become the renderer's ".h5-<tag>" classes.
//
// Rules inside @keyframes, @font-face and @page are left untouched.
package cssadjust
