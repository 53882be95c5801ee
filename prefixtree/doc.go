package prefixtree

/*

# Lock-free prefix tree over 64-bit symbols

This package provides a concurrent prefix tree (trie) keyed by sequences of
positive 64-bit integers ("symbols"), with a single atomically-updatable
64-bit counter at every reachable node. Any number of goroutines may descend,
insert, and update counters at the same time; no operation ever takes a lock
or blocks.

The intended use is counting along paths, for example sampled call stacks
where every frame has been assigned a symbol:

	tree := prefixtree.New()
	tree.Root().At(main).At(parse).At(lex).IncValue()

A node handed out by At remains valid for the lifetime of the tree and may be
retained and reused from any goroutine. Nodes are never removed; there is no
deletion, no ordered iteration and no persistence.

## Child representations

A node stores its outgoing edges in one of three representations, switched in
place as the child set grows:

- empty: no children yet (a nil children pointer)
- linear: a small array of child slots, filled strictly left to right,
  starting at capacity 2 and doubling up to 8
- hash: an open-addressed, linearly-probed array of child slots, power-of-two
  sized, 16 and up

A slot is a single atomic pointer to a child node, and the child carries its
own edge symbol. Installing a child is therefore one CAS, and an occupied
slot never changes again: growth moves slot *containers*, never the child
nodes themselves, so the node returned for a symbol is stable across any
number of growths.

The representation of a node only ever moves forward along

	empty -> linear(2) -> linear(4) -> linear(8) -> hash(16) -> hash(32) -> ...

## Growth protocol

A thread that finds no free slot (linear) or too much load (hash) grows the
array:

 1. every empty slot of the old array is CASed to a frozen marker, so no
    further child can be installed into it (a saturated linear array has no
    empty slots and this pass is vacuous)
 2. the occupied slots, now immutable, are copied into a freshly allocated
    successor of the next capacity, preserving child identity
 3. the parent's children pointer is CASed from the old array to the
    successor

If two threads grow concurrently only one CAS at step 3 succeeds; the loser
discards its successor and restarts. A reader that runs into a frozen slot
restarts from the children pointer, which advances within a bounded number of
steps. Readers holding the old array can still follow any occupied slot,
because occupied slots are never overwritten.

Every growth strictly increases capacity, so a single insertion restarts at
most O(log fanout) times per node; the structure is lock-free (system-wide
progress is always made) though not wait-free.

## Allocation

Nodes are allocated speculatively before the installing CAS and handed back
to a pool when the CAS loses. The allocator is per tree and can optionally
bound the number of live nodes; an exceeded bound surfaces
ErrAllocatorExhausted and leaves the tree unmodified.

*/
