package profile

import (
	"encoding/binary"
	"errors"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/mv02/graal/prefixtree"
)

// ErrEmptyPath is returned when recording a path with no symbols.
var ErrEmptyPath = errors.New("profile: empty call path")

// RecorderConfig configures a Recorder.
type RecorderConfig struct {
	// Tree receives the recorded paths. A fresh tree with an unbounded
	// allocator is created when nil. The tree may be shared with direct
	// prefixtree users but not with another recorder.
	Tree *prefixtree.Tree
}

// Recorder counts call paths in a prefix tree. All methods are safe for
// concurrent use.
type Recorder struct {
	tree   *prefixtree.Tree
	frames *internTable

	// paths registers every distinct recorded path, keyed by the xxhash of
	// its symbol sequence. The value chains the (rare) paths sharing a
	// digest.
	paths    *xsync.MapOf[uint64, [][]uint64]
	distinct *xsync.Counter
	samples  *xsync.Counter
}

func NewRecorder(cfg RecorderConfig) *Recorder {
	tree := cfg.Tree
	if tree == nil {
		tree = prefixtree.New()
	}
	return &Recorder{
		tree:     tree,
		frames:   newInternTable(),
		paths:    xsync.NewMapOf[uint64, [][]uint64](),
		distinct: xsync.NewCounter(),
		samples:  xsync.NewCounter(),
	}
}

// Tree returns the underlying tree.
func (r *Recorder) Tree() *prefixtree.Tree { return r.tree }

// Symbol interns a frame name.
func (r *Recorder) Symbol(frame string) uint64 { return r.frames.symbol(frame) }

// FrameName resolves a symbol previously returned by Symbol.
func (r *Recorder) FrameName(sym uint64) (string, bool) { return r.frames.name(sym) }

// Record descends the path from the root, creating nodes as needed, and
// increments the leaf counter. The whole path is validated before the
// descent, so ErrInvalidSymbol leaves the tree untouched; exhausting the
// tree's node budget mid-descent can leave a prefix of the path created.
// A failed Record never counts a sample and never registers the path.
func (r *Recorder) Record(path ...uint64) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	for _, sym := range path {
		if err := prefixtree.CheckSymbol(sym); err != nil {
			return err
		}
	}
	node := r.tree.Root()
	var err error
	for _, sym := range path {
		if node, err = node.TryAt(sym); err != nil {
			return err
		}
	}
	node.IncValue()
	r.samples.Inc()
	r.register(path)
	return nil
}

// RecordFrames interns the frame names and records the resulting path.
func (r *Recorder) RecordFrames(frames ...string) error {
	if len(frames) == 0 {
		return ErrEmptyPath
	}
	path := make([]uint64, len(frames))
	for i, frame := range frames {
		path[i] = r.frames.symbol(frame)
	}
	return r.Record(path...)
}

// Samples returns the number of successfully recorded paths.
func (r *Recorder) Samples() int64 { return r.samples.Value() }

// DistinctPaths returns the number of distinct paths recorded so far.
func (r *Recorder) DistinctPaths() int { return int(r.distinct.Value()) }

// InternedFrames returns the number of frame names interned so far.
func (r *Recorder) InternedFrames() int { return r.frames.size() }

func pathDigest(path []uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, sym := range path {
		binary.BigEndian.PutUint64(buf[:], sym)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

func containsPath(entries [][]uint64, path []uint64) bool {
	for _, entry := range entries {
		if slices.Equal(entry, path) {
			return true
		}
	}
	return false
}

func (r *Recorder) register(path []uint64) {
	digest := pathDigest(path)
	if entries, ok := r.paths.Load(digest); ok && containsPath(entries, path) {
		return
	}
	added := false
	r.paths.Compute(digest, func(old [][]uint64, _ bool) ([][]uint64, bool) {
		if containsPath(old, path) {
			return old, false
		}
		added = true
		return append(old, slices.Clone(path)), false
	})
	if added {
		r.distinct.Inc()
	}
}
