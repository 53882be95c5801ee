package prefixtree

import "errors"

// Symbols label tree edges. Two values can never be real symbols:
//
//   - noSymbol (0) is the implicit symbol of an empty slot
//   - frozenKey (all ones) is the key of the frozen marker node installed
//     into empty slots while a child array is being grown
//
// At and TryAt reject both at entry.
const (
	noSymbol  = uint64(0)
	frozenKey = ^uint64(0)
)

const (
	// initialLinearCapacity is the child capacity given to a node on its
	// first insertion.
	initialLinearCapacity = 2

	// maxLinearCapacity is the largest linear representation. A saturated
	// linear array of this size grows into the hash representation.
	maxLinearCapacity = 8

	// initialHashCapacity is the capacity of the first hash representation.
	// Hash capacities are always powers of two.
	initialHashCapacity = 16
)

var (
	// ErrInvalidSymbol is returned by TryAt for symbol 0 or the reserved
	// frozen sentinel value.
	ErrInvalidSymbol = errors.New("prefixtree: symbol must be positive and not a reserved sentinel")

	// ErrAllocatorExhausted is returned by TryAt when the tree's allocator
	// was configured with a node budget and the budget is spent.
	ErrAllocatorExhausted = errors.New("prefixtree: node allocator exhausted")
)

// CheckSymbol reports whether symbol may label a tree edge. It returns
// ErrInvalidSymbol for 0 and for the reserved frozen sentinel, the same
// validation TryAt applies; callers descending multi-symbol paths can use it
// to reject a whole path before creating any of its nodes.
func CheckSymbol(symbol uint64) error {
	if symbol == noSymbol || symbol == frozenKey {
		return ErrInvalidSymbol
	}
	return nil
}
