package graph

import (
	"iter"
	"sync"

	"github.com/colorscc/scc/pkg/collections"
)

// Successors returns a lazy, finite, non-restartable sequence of v's
// outgoing neighbors that are active. If active[v] is false the sequence
// is empty; otherwise a self-loop is yielded like any other outgoing
// edge.
func Successors(g *Graph, active *ActiveSet, v int32) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		if !active.IsActive(v) {
			return
		}
		for _, u := range g.outNeighbors(v) {
			if !active.IsActive(u) {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}

// Predecessors is the symmetric counterpart of Successors over incoming
// edges.
func Predecessors(g *Graph, active *ActiveSet, v int32) iter.Seq[int32] {
	return func(yield func(int32) bool) {
		if !active.IsActive(v) {
			return
		}
		for _, u := range g.inNeighbors(v) {
			if !active.IsActive(u) {
				continue
			}
			if !yield(u) {
				return
			}
		}
	}
}

// IsTrivial reports whether v, in the induced active subgraph, has no
// incoming active edge or no outgoing active edge. Such a vertex cannot
// lie on any cycle and therefore forms a singleton SCC. A vertex whose
// only active edge is a self-loop is not trivial: the self-loop counts
// as both an in-edge and an out-edge.
func IsTrivial(g *Graph, active *ActiveSet, v int32) bool {
	hasIn := false
	for range Predecessors(g, active, v) {
		hasIn = true
		break
	}
	if !hasIn {
		return true
	}
	hasOut := false
	for range Successors(g, active, v) {
		hasOut = true
		break
	}
	return !hasOut
}

// bfsScratch bundles the O(n) visited bitmap and FIFO queue a reverse BFS
// needs. Pooled per-worker so a parallel peel phase does not allocate one
// per root.
type bfsScratch struct {
	visited *collections.VersionedBitset
	queue   *collections.Queue[int32]
}

var scratchPool = sync.Pool{
	New: func() interface{} {
		return &bfsScratch{}
	},
}

// getScratch returns a bfsScratch sized for at least n vertices, sourced
// from the pool, with a fresh (reset) visited bitmap. A scratch object
// pulled from the pool may have been sized for a smaller graph in an
// earlier call (the pool is process-wide, not per-graph), so it is
// reallocated rather than reused whenever it is too small for n.
func getScratch(n int) *bfsScratch {
	s := scratchPool.Get().(*bfsScratch)
	if s.visited == nil || s.visited.Size() < n {
		s.visited = collections.NewVersionedBitset(n)
		s.queue = collections.NewQueue[int32](n)
	} else {
		s.visited.Reset()
	}
	s.queue.Clear()
	return s
}

func putScratch(s *bfsScratch) {
	scratchPool.Put(s)
}

// ReverseBFS expands from root along incoming edges, restricted to
// vertices u with active[u] and color[u] == targetColor. It appends the
// set of visited vertices, including root, to dst and returns the result,
// following the append-style convention of growing a caller-supplied
// buffer (the same convention as strconv.AppendInt) so a caller peeling
// many roots in sequence can reuse one buffer — e.g. one sourced from
// collections.Int32SlicePool — across every call instead of allocating a
// fresh slice per root. If root itself does not satisfy the restriction,
// dst is returned unchanged.
//
// Each vertex is visited at most once. The resource bound is O(n)
// scratch: a visited bitmap and a queue of capacity n, both pooled.
func ReverseBFS(g *Graph, active *ActiveSet, color []int32, targetColor int32, root int32, dst []int32) []int32 {
	if !active.IsActive(root) || color[root] != targetColor {
		return dst
	}

	s := getScratch(g.NumVertices())
	defer putScratch(s)

	visited := dst
	s.visited.Set(int(root))
	s.queue.Enqueue(root)
	visited = append(visited, root)

	for {
		v, ok := s.queue.Dequeue()
		if !ok {
			break
		}
		for _, u := range g.inNeighbors(v) {
			if s.visited.Test(int(u)) {
				continue
			}
			if !active.IsActive(u) || color[u] != targetColor {
				continue
			}
			s.visited.Set(int(u))
			s.queue.Enqueue(u)
			visited = append(visited, u)
		}
	}

	return visited
}
