// Package pipeline drives a build through its phases in strict order:
//
//	collect -> partition -> route -> generate -> assemble -> emit -> optimize -> [wrap]
//
// The optimize stage ends by sealing chunk hashes. Where the sandbox wrap runs
// is fixed when the stage list is built: inline, as the last optimize step
// before the seal, or deferred, as its own stage after the seal
// (generate.afterOptimizations). Either way it runs exactly once, after every
// chunk optimization.
//
// A build never mutates its inputs: options and the host compilation are
// deep-copied before the first phase, so reruns are byte-identical.
package pipeline
