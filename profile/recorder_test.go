package profile_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mv02/graal/prefixtree"
	"github.com/mv02/graal/profile"
	"github.com/mv02/graal/treetesting"
)

func TestRecordAndSnapshot(t *testing.T) {
	r := profile.NewRecorder(profile.RecorderConfig{})

	require.NoError(t, r.Record(1, 2, 3))
	require.NoError(t, r.Record(1, 2, 3))
	require.NoError(t, r.Record(1, 2))
	require.NoError(t, r.Record(4))

	require.Equal(t, int64(4), r.Samples())
	require.Equal(t, 3, r.DistinctPaths())

	snap := r.Snapshot()
	require.Len(t, snap.Samples, 3)

	// Hottest first, then by path.
	require.Equal(t, []uint64{1, 2, 3}, snap.Samples[0].Path)
	require.Equal(t, int64(2), snap.Samples[0].Count)
	require.Equal(t, []uint64{1, 2}, snap.Samples[1].Path)
	require.Equal(t, int64(1), snap.Samples[1].Count)
	require.Equal(t, []uint64{4}, snap.Samples[2].Path)
	require.Equal(t, int64(1), snap.Samples[2].Count)

	// The counters live in the tree: a prefix path is its own node.
	require.Equal(t, int64(1), r.Tree().Root().At(1).At(2).Value())
	require.Equal(t, int64(2), r.Tree().Root().At(1).At(2).At(3).Value())
}

func TestRecordFramesInterning(t *testing.T) {
	r := profile.NewRecorder(profile.RecorderConfig{})

	require.NoError(t, r.RecordFrames("main", "parse", "lex"))
	require.NoError(t, r.RecordFrames("main", "parse", "lex"))
	require.NoError(t, r.RecordFrames("main", "eval"))

	require.Equal(t, 4, r.InternedFrames())
	require.Equal(t, r.Symbol("main"), r.Symbol("main"))

	name, ok := r.FrameName(r.Symbol("parse"))
	require.True(t, ok)
	require.Equal(t, "parse", name)

	snap := r.Snapshot()
	require.Len(t, snap.Samples, 2)
	require.Equal(t, []string{"main", "parse", "lex"}, snap.Samples[0].Frames)
	require.Equal(t, int64(2), snap.Samples[0].Count)

	require.Contains(t, snap.String(), "main;parse;lex")
}

func TestRecordErrors(t *testing.T) {
	r := profile.NewRecorder(profile.RecorderConfig{})

	require.ErrorIs(t, r.Record(), profile.ErrEmptyPath)
	require.ErrorIs(t, r.RecordFrames(), profile.ErrEmptyPath)
	require.ErrorIs(t, r.Record(1, 0, 3), prefixtree.ErrInvalidSymbol)
	require.ErrorIs(t, r.Record(^uint64(0)), prefixtree.ErrInvalidSymbol)

	// Nothing was registered or counted by the failed calls, and the path
	// prefix ahead of the bad symbol was not descended into the tree.
	require.Equal(t, int64(0), r.Samples())
	require.Equal(t, 0, r.DistinctPaths())
	require.Equal(t, int64(0), r.Tree().Allocator().Stats().LiveNodes)
}

func TestRecorderConcurrent(t *testing.T) {
	c := treetesting.NewTestContext(t, treetesting.TestConfig{Seed: 1})
	r := profile.NewRecorder(profile.RecorderConfig{Tree: c.Tree})

	stacks := [][]string{
		{"main", "serve", "handle"},
		{"main", "serve", "handle", "encode"},
		{"main", "gc"},
		{"main", "serve", "read"},
	}
	parallelism := 8
	rounds := 250

	c.InParallel(parallelism, func(int) error {
		for i := 0; i < rounds; i++ {
			for _, stack := range stacks {
				if err := r.RecordFrames(stack...); err != nil {
					return err
				}
			}
		}
		return nil
	})

	require.Equal(t, int64(parallelism*rounds*len(stacks)), r.Samples())
	require.Equal(t, len(stacks), r.DistinctPaths())

	snap := r.Snapshot()
	require.Len(t, snap.Samples, len(stacks))
	for _, sample := range snap.Samples {
		require.Equal(t, int64(parallelism*rounds), sample.Count)
	}
}
