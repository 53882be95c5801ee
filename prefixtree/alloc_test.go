package prefixtree

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorStatsConservation(t *testing.T) {
	tree := New()
	parallelism := 8
	symbols := uint64(1000)

	var wg sync.WaitGroup
	for w := 0; w < parallelism; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := uint64(1); i <= symbols; i++ {
				tree.Root().At(i)
			}
		}()
	}
	wg.Wait()

	st := tree.Allocator().Stats()

	// One live node per distinct symbol; every speculative loser was
	// returned to the pool.
	require.Equal(t, int64(symbols), st.LiveNodes)
	require.Equal(t, st.LiveNodes, st.NodesAllocated-st.NodesDiscarded)
	require.GreaterOrEqual(t, st.NodesAllocated, int64(symbols))

	// The root's representation chain for 1000 children is
	// linear(2,4,8) then hash(16..2048): two linear growths, eight hash
	// growths, each published exactly once.
	require.Equal(t, int64(2), st.LinearGrowths)
	require.Equal(t, int64(8), st.HashGrowths)
}

func TestAllocatorRecyclesThroughPool(t *testing.T) {
	a := NewAllocator(AllocatorConfig{})

	n, err := a.newNode(7)
	require.NoError(t, err)
	n.SetValue(99)
	a.discardNode(n)

	// A recycled node must come back indistinguishable from a fresh one.
	m, err := a.newNode(8)
	require.NoError(t, err)
	require.Equal(t, uint64(8), m.key)
	require.Equal(t, int64(0), m.Value())
	require.Nil(t, m.children.Load())

	st := a.Stats()
	require.Equal(t, int64(1), st.LiveNodes)
	require.Equal(t, int64(2), st.NodesAllocated)
	require.Equal(t, int64(1), st.NodesDiscarded)
}
