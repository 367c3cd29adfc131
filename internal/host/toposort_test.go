package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_Order(t *testing.T) {
	order, err := topoSort(3, func(i int) []int {
		switch i {
		case 0:
			return []int{2}
		case 1:
			return []int{2}
		default:
			return nil
		}
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 1}, order)
}

func TestTopoSort_Cycle(t *testing.T) {
	_, err := topoSort(2, func(i int) []int {
		if i == 0 {
			return []int{1}
		}

		return []int{0}
	})
	assert.ErrorIs(t, err, errCycle)
}

func TestTopoSort_OutOfRange(t *testing.T) {
	_, err := topoSort(1, func(int) []int { return []int{3} })
	assert.ErrorContains(t, err, "out of range")
}

func TestMetafile_EntryFilesCycleFallsBack(t *testing.T) {
	meta := &Metafile{Outputs: map[string]MetaOutput{
		"e.js": {EntryPoint: "e.ts", Imports: []MetaImport{{Path: "a.js", Kind: "import-statement"}}},
		"a.js": {Imports: []MetaImport{{Path: "b.js", Kind: "import-statement"}}},
		"b.js": {Imports: []MetaImport{{Path: "a.js", Kind: "import-statement"}}},
	}}

	assert.Equal(t, []string{"b.js", "a.js", "e.js"}, meta.EntryFiles("e.js"))
}
