package host

import (
	"errors"
	"fmt"
	"sort"
)

// errCycle is returned when the import graph of an entry has a cycle.
// EntryFiles falls back to a depth-first post-order in that case.
var errCycle = errors.New("cycle detected")

// topoSort returns node indices so that every node follows its dependencies.
// It is Kahn's algorithm over the nodes 0..n-1.
//
// depsFn(i) yields indices that must come before i; a chunk's imports load
// before the chunk itself. When several nodes are ready the smallest index is
// taken, so the order is deterministic for a given node numbering.
//
// It returns errCycle when some nodes never become ready, and an error when
// depsFn yields an index outside 0..n-1.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	// indeg counts unmet dependencies; out lists the dependents of each node.
	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	// ready stays sorted so its head is always the smallest ready index.
	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, errCycle
	}

	return order, nil
}
