package profile

/*

# Call-path recording over the lock-free prefix tree

This package is the counting side of a sampling profiler: it takes call
paths — either pre-assigned symbols or stacks of frame names — and records
them into a prefixtree.Tree, one counter per distinct path. Recording is safe
from any number of goroutines and stays lock-free end to end: interning,
path registration and the tree descent all use concurrent structures.

	r := profile.NewRecorder(profile.RecorderConfig{})
	r.RecordFrames("main", "parse", "lex")
	r.RecordFrames("main", "parse", "lex")
	snap := r.Snapshot()

The tree itself has no iteration surface, so the recorder keeps its own
registry of the distinct paths it has seen, keyed by a streaming xxhash of
the symbol sequence. Snapshot replays the registry through the tree's public
surface and reads the counters; the result is a plain value that can be
printed, compared, or serialized with the CBOR codec.

Observability is scrape-based: Collector adapts a recorder and its tree's
allocator statistics to a prometheus.Collector.

*/
