package prefixtree

import "sync/atomic"

// Node is one vertex of the tree: a 64-bit counter plus a child array in one
// of the three representations. Nodes are created by At/TryAt, live for the
// lifetime of the tree, and are safe to retain and share between goroutines.
type Node struct {
	// key is the symbol on the edge from the parent, fixed at creation.
	// 0 for the root and frozenKey for the frozen marker.
	key uint64

	alloc    *Allocator
	value    atomic.Int64
	children atomic.Pointer[childArray]
}

// Value returns the node's counter.
func (n *Node) Value() int64 { return n.value.Load() }

// Get returns the node's counter. Synonym of Value.
func (n *Node) Get() int64 { return n.value.Load() }

// SetValue overwrites the node's counter.
func (n *Node) SetValue(v int64) { n.value.Store(v) }

// IncValue atomically increments the node's counter by one.
func (n *Node) IncValue() { n.value.Add(1) }

// IncrementAndGet atomically increments the node's counter by one and
// returns the new value.
func (n *Node) IncrementAndGet() int64 { return n.value.Add(1) }

// At returns the unique child of this node under symbol, creating it with
// counter 0 if it does not exist yet. The same symbol always yields the same
// child, from any goroutine, across any growth of the child array.
//
// At panics if symbol is 0 or the reserved sentinel, or if the tree's node
// budget is exhausted. Use TryAt for explicit error handling.
func (n *Node) At(symbol uint64) *Node {
	child, err := n.TryAt(symbol)
	if err != nil {
		panic(err)
	}
	return child
}

// TryAt is At with sentinel-error reporting: ErrInvalidSymbol for symbol 0
// or the reserved sentinel, ErrAllocatorExhausted when a configured node
// budget is spent. On error the tree is unmodified.
func (n *Node) TryAt(symbol uint64) (*Node, error) {
	if err := CheckSymbol(symbol); err != nil {
		return nil, err
	}
	for {
		arr := n.children.Load()
		if arr == nil {
			child, err := n.installFirst(symbol)
			if err != nil {
				return nil, err
			}
			if child != nil {
				return child, nil
			}
			continue
		}

		var (
			child *Node
			retry bool
			err   error
		)
		switch arr.kind {
		case kindLinear:
			child, retry, err = n.atLinear(arr, symbol)
		default:
			child, retry, err = n.atHash(arr, symbol)
		}
		if err != nil {
			return nil, err
		}
		if !retry {
			return child, nil
		}
	}
}

// installFirst swings the children pointer from empty to a linear array of
// capacity 2 holding the new child. A nil, nil return means another
// insertion won the swing and the caller must restart.
func (n *Node) installFirst(symbol uint64) (*Node, error) {
	child, err := n.alloc.newNode(symbol)
	if err != nil {
		return nil, err
	}
	arr := n.alloc.newLinear(initialLinearCapacity)
	arr.slots[0].Store(child)
	if n.children.CompareAndSwap(nil, arr) {
		return child, nil
	}
	n.alloc.discardNode(child)
	return nil, nil
}

// atLinear scans the slots left to right. The first nil slot ends the
// occupied prefix and is claimed for the new child; a lost claim is
// re-examined in place, since the winner may have installed the very symbol
// we are looking for. A full scan with no match and no free slot grows the
// array.
func (n *Node) atLinear(arr *childArray, symbol uint64) (child *Node, retry bool, err error) {
	for i := range arr.slots {
		s := arr.slots[i].Load()
		if s == nil {
			child, err = n.alloc.newNode(symbol)
			if err != nil {
				return nil, false, err
			}
			if arr.slots[i].CompareAndSwap(nil, child) {
				return child, false, nil
			}
			n.alloc.discardNode(child)
			s = arr.slots[i].Load()
		}
		if s == frozen {
			return nil, true, nil
		}
		if s.key == symbol {
			return s, false, nil
		}
	}
	n.grow(arr)
	return nil, true, nil
}

// atHash probes from scramble(symbol). Claiming an empty slot first checks
// the load bound, so no slot is claimed once occupancy has reached 2/3 of
// capacity (the last claim may take it one slot past that); lookups of
// already-present symbols never trigger growth. Probing every slot without
// finding the symbol or an empty slot degenerates to growth as well, which
// covers the window where concurrent claims overshoot the load bound.
func (n *Node) atHash(arr *childArray, symbol uint64) (child *Node, retry bool, err error) {
	mask := uint64(len(arr.slots) - 1)
	idx := scramble(symbol) & mask
	for probed := 0; probed < len(arr.slots); probed++ {
		s := arr.slots[idx].Load()
		if s == nil {
			if arr.growthBound(arr.used.Load()) {
				break
			}
			child, err = n.alloc.newNode(symbol)
			if err != nil {
				return nil, false, err
			}
			if arr.slots[idx].CompareAndSwap(nil, child) {
				arr.used.Add(1)
				return child, false, nil
			}
			n.alloc.discardNode(child)
			s = arr.slots[idx].Load()
		}
		if s == frozen {
			return nil, true, nil
		}
		if s.key == symbol {
			return s, false, nil
		}
		idx = (idx + 1) & mask
	}
	n.grow(arr)
	return nil, true, nil
}

// grow freezes old, copies its children into a successor of the next
// capacity and publishes the successor. Concurrent growers race on the final
// CAS; the loser's successor is discarded and the caller restarts against
// whatever is published.
func (n *Node) grow(old *childArray) {
	old.freeze()

	var successor *childArray
	switch {
	case old.kind == kindLinear && old.capacity() < maxLinearCapacity:
		successor = n.alloc.newLinear(old.capacity() * 2)
	case old.kind == kindLinear:
		successor = n.alloc.newHash(initialHashCapacity)
	default:
		successor = n.alloc.newHash(old.capacity() * 2)
	}
	for i := range old.slots {
		if s := old.slots[i].Load(); s != nil && s != frozen {
			successor.insertUnshared(s)
		}
	}

	if n.children.CompareAndSwap(old, successor) {
		n.alloc.noteGrowth(successor.kind)
	}
}
