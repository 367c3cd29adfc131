// Package host adapts a web-style compilation into the shape the pipeline
// consumes: ordered entrypoints with their emitted files, the emitted file
// contents, and the script chunks.
//
// Two sources are supported. LoadMetafile ingests a finished esbuild build
// from its metafile and output directory. Build runs esbuild in memory.
package host
