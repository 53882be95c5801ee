package prefixtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScrambleIsNotIdentity(t *testing.T) {
	moved := 0
	for i := uint64(1); i <= 256; i++ {
		if scramble(i) != i {
			moved++
		}
	}
	require.Greater(t, moved, 250)
}

func TestScrambleInjectiveOnSample(t *testing.T) {
	seen := make(map[uint64]uint64, 200000)
	for i := uint64(1); i <= 200000; i++ {
		h := scramble(i)
		if prev, ok := seen[h]; ok {
			t.Fatalf("scramble(%d) == scramble(%d) == %#x", i, prev, h)
		}
		seen[h] = i
	}
}

// TestProbeLengthUnderFlatInsertion feeds the adversarial flat workload
// (consecutive symbols) to a single node and bounds the mean probe length
// against the open-addressing expectation for the observed load. The
// identity hash fails this by orders of magnitude: consecutive symbols
// collapse into one primary cluster.
func TestProbeLengthUnderFlatInsertion(t *testing.T) {
	node := New().Root()
	for i := uint64(1); i < 10000; i++ {
		node.At(i)
	}

	arr := node.children.Load()
	require.Equal(t, kindHash, arr.kind)

	mask := uint64(arr.capacity() - 1)
	var totalProbes, occupied float64
	for idx := range arr.slots {
		s := arr.slots[idx].Load()
		if s == nil || s == frozen {
			continue
		}
		home := scramble(s.key) & mask
		distance := (uint64(idx) - home) & mask
		totalProbes += float64(distance + 1)
		occupied++
	}
	require.Equal(t, float64(9999), occupied)

	load := occupied / float64(arr.capacity())
	expected := (1 + 1/(1-load)) / 2
	mean := totalProbes / occupied
	require.Lessf(t, mean, 1.5*expected,
		"mean probe length %.2f over 1.5x the expected %.2f at load %.2f", mean, expected, load)
}
