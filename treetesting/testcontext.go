package treetesting

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/mv02/graal/prefixtree"
)

// TestConfig configures a TestContext.
type TestConfig struct {
	// Seed seeds the context RNG. It is normal to force a fixed value so
	// that generated symbol sequences are the same from run to run.
	Seed int64

	// MaxNodes, when non-zero, bounds the tree's allocator.
	MaxNodes int64
}

// TestContext bundles a fresh tree with the deterministic data generation
// and goroutine fan-out the concurrency tests share.
type TestContext struct {
	T    *testing.T
	Tree *prefixtree.Tree
	Rand *rand.Rand
}

func NewTestContext(t *testing.T, cfg TestConfig) *TestContext {
	alloc := prefixtree.NewAllocator(prefixtree.AllocatorConfig{MaxNodes: cfg.MaxNodes})
	return &TestContext{
		T:    t,
		Tree: prefixtree.NewWithAllocator(alloc),
		Rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// InParallel runs body on parallelism goroutines, passing each its index,
// and waits for all of them. Any error fails the test.
func (c *TestContext) InParallel(parallelism int, body func(threadIdx int) error) {
	g := &errgroup.Group{}
	for t := 0; t < parallelism; t++ {
		t := t
		g.Go(func() error { return body(t) })
	}
	require.NoError(c.T, g.Wait())
}

// ShuffledSymbols returns the symbols 1..n in an order drawn from the
// context RNG.
func (c *TestContext) ShuffledSymbols(n int) []uint64 {
	syms := make([]uint64, n)
	for i := range syms {
		syms[i] = uint64(i + 1)
	}
	c.Rand.Shuffle(n, func(i, j int) { syms[i], syms[j] = syms[j], syms[i] })
	return syms
}
