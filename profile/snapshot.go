package profile

import (
	"slices"
	"sort"
)

// Sample is one distinct call path and its counter value.
type Sample struct {
	Path []uint64 `cbor:"1,keyasint"`

	// Frames carries the resolved frame names when every symbol of the path
	// was interned through the recorder, and is nil otherwise.
	Frames []string `cbor:"2,keyasint,omitempty"`

	Count int64 `cbor:"3,keyasint"`
}

// Snapshot is a point-in-time flattening of a recorder: every distinct path
// with the counter it had when the snapshot walked it, hottest first. Paths
// recorded concurrently with the snapshot may appear with a partial count or
// not at all; each individual counter read is atomic.
type Snapshot struct {
	Samples []Sample `cbor:"1,keyasint"`
}

// Snapshot replays the recorder's path registry through the tree and reads
// the counters. The tree keeps no iteration state; only registered paths are
// visited.
func (r *Recorder) Snapshot() *Snapshot {
	var samples []Sample
	r.paths.Range(func(_ uint64, entries [][]uint64) bool {
		for _, path := range entries {
			node := r.tree.Root()
			for _, sym := range path {
				node = node.At(sym)
			}
			samples = append(samples, Sample{
				Path:   slices.Clone(path),
				Frames: r.frameNames(path),
				Count:  node.Value(),
			})
		}
		return true
	})
	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Count != samples[j].Count {
			return samples[i].Count > samples[j].Count
		}
		return slices.Compare(samples[i].Path, samples[j].Path) < 0
	})
	return &Snapshot{Samples: samples}
}

func (r *Recorder) frameNames(path []uint64) []string {
	names := make([]string, 0, len(path))
	for _, sym := range path {
		name, ok := r.frames.name(sym)
		if !ok {
			return nil
		}
		names = append(names, name)
	}
	return names
}
