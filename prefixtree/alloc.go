package prefixtree

import (
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// AllocatorConfig configures a tree's node allocator.
type AllocatorConfig struct {
	// MaxNodes bounds the number of live nodes the allocator will hand out,
	// root excluded. 0 means unbounded. When the bound is reached, TryAt
	// returns ErrAllocatorExhausted and At panics; the tree itself is left
	// unmodified.
	MaxNodes int64
}

// Allocator is the per-tree source of nodes and child arrays. Insertion
// allocates nodes speculatively, before the installing CAS, so losing a race
// hands a fresh node straight back; those are recycled through a pool rather
// than left to pile up on the garbage collector.
//
// The stats counters are striped (xsync.Counter) so that maintaining them on
// the insertion path does not serialize writers.
type Allocator struct {
	maxNodes int64

	// live is allocated minus discarded. It is maintained for every
	// allocator and reported by Stats; the budget check against it applies
	// only when maxNodes > 0.
	live atomic.Int64

	pool sync.Pool

	nodesAllocated *xsync.Counter
	nodesDiscarded *xsync.Counter
	linearGrowths  *xsync.Counter
	hashGrowths    *xsync.Counter
}

// AllocatorStats is a point-in-time copy of the allocator's counters.
type AllocatorStats struct {
	// LiveNodes is the number of nodes currently reachable or in flight,
	// root excluded.
	LiveNodes int64
	// NodesAllocated counts every node handed out, including speculative
	// allocations that later lost their installing CAS.
	NodesAllocated int64
	// NodesDiscarded counts CAS losers returned to the pool.
	NodesDiscarded int64
	// LinearGrowths and HashGrowths count published child-array growths by
	// the kind of the successor array.
	LinearGrowths int64
	HashGrowths   int64
}

// NewAllocator returns an allocator for use with NewWithAllocator.
func NewAllocator(cfg AllocatorConfig) *Allocator {
	a := &Allocator{
		maxNodes:       cfg.MaxNodes,
		nodesAllocated: xsync.NewCounter(),
		nodesDiscarded: xsync.NewCounter(),
		linearGrowths:  xsync.NewCounter(),
		hashGrowths:    xsync.NewCounter(),
	}
	a.pool.New = func() any { return new(Node) }
	return a
}

// Stats returns a snapshot of the allocator's counters. The counters are
// striped, so a snapshot taken under concurrent updates is approximate.
func (a *Allocator) Stats() AllocatorStats {
	return AllocatorStats{
		LiveNodes:      a.live.Load(),
		NodesAllocated: a.nodesAllocated.Value(),
		NodesDiscarded: a.nodesDiscarded.Value(),
		LinearGrowths:  a.linearGrowths.Value(),
		HashGrowths:    a.hashGrowths.Value(),
	}
}

func (a *Allocator) newNode(symbol uint64) (*Node, error) {
	// Reserve before checking: concurrent callers racing a Load-then-Add
	// could all pass the check and overshoot the bound together. A failed
	// reservation is rolled back.
	if n := a.live.Add(1); a.maxNodes > 0 && n > a.maxNodes {
		a.live.Add(-1)
		return nil, ErrAllocatorExhausted
	}
	a.nodesAllocated.Inc()

	n := a.pool.Get().(*Node)
	n.key = symbol
	n.alloc = a
	n.value.Store(0)
	n.children.Store(nil)
	return n, nil
}

// discardNode takes back a node whose installing CAS lost. The node was
// never published, so no other goroutine can hold a reference to it.
func (a *Allocator) discardNode(n *Node) {
	n.key = noSymbol
	n.alloc = nil
	a.live.Add(-1)
	a.nodesDiscarded.Inc()
	a.pool.Put(n)
}

func (a *Allocator) newLinear(capacity int) *childArray {
	return &childArray{kind: kindLinear, slots: make([]atomic.Pointer[Node], capacity)}
}

func (a *Allocator) newHash(capacity int) *childArray {
	return &childArray{kind: kindHash, slots: make([]atomic.Pointer[Node], capacity)}
}

func (a *Allocator) noteGrowth(kind childKind) {
	if kind == kindLinear {
		a.linearGrowths.Inc()
		return
	}
	a.hashGrowths.Inc()
}
