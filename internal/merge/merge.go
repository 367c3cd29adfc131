// Package merge implements the documented deep merge used for descriptor
// overrides: maps recurse, everything else (arrays, scalars, nil) is replaced
// wholesale by the override.
package merge

// Deep merges src into dst and returns dst. A nil dst is allocated.
// Nested maps in dst are modified in place; src is never modified, and maps
// copied over from src are cloned so later merges cannot alias them.
func Deep(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}

	for k, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[k].(map[string]any)

		switch {
		case srcIsMap && dstIsMap:
			dst[k] = Deep(dm, sm)
		case srcIsMap:
			dst[k] = Deep(nil, sm)
		default:
			dst[k] = sv
		}
	}

	return dst
}
