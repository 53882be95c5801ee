package profile

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// internTable assigns dense positive symbols to frame names, first come
// first numbered. Symbols start at 1; 0 is not a legal tree symbol.
type internTable struct {
	ids   *xsync.MapOf[string, uint64]
	names *xsync.MapOf[uint64, string]
	next  atomic.Uint64
}

func newInternTable() *internTable {
	return &internTable{
		ids:   xsync.NewMapOf[string, uint64](),
		names: xsync.NewMapOf[uint64, string](),
	}
}

// symbol returns the symbol for frame, assigning the next free one on first
// sight. The reverse mapping is stored before the entry becomes visible, so
// any symbol obtained here always resolves through name.
func (t *internTable) symbol(frame string) uint64 {
	sym, _ := t.ids.LoadOrCompute(frame, func() uint64 {
		sym := t.next.Add(1)
		t.names.Store(sym, frame)
		return sym
	})
	return sym
}

func (t *internTable) name(sym uint64) (string, bool) {
	return t.names.Load(sym)
}

func (t *internTable) size() int {
	return t.ids.Size()
}
