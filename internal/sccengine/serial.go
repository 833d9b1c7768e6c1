package sccengine

import (
	"github.com/colorscc/scc/internal/graph"
	"github.com/colorscc/scc/pkg/collections"
)

// Serial computes the SCC decomposition of g using a single-threaded
// trim-then-color pass: repeated trimming of vertices that cannot lie on
// any cycle, followed by repeated rounds of color initialization,
// predecessor-min propagation to a fixed point, root gathering, and
// per-color reverse-BFS peeling, until no vertex remains active.
func Serial(g *graph.Graph) Result {
	n := g.NumVertices()
	sccID := make([]int32, n)
	active := graph.NewActiveSet(n)
	count := 0

	trimSerial(g, active, sccID, &count)

	// rootsBuf and visitedBuf are reused across every outer iteration and
	// every root peeled within an iteration, rather than letting each
	// round's root list and each root's reverse-BFS result start from a
	// nil slice and reallocate as it grows.
	rootsBuf := collections.GetInt32Slice()
	defer collections.PutInt32Slice(rootsBuf)
	visitedBuf := collections.GetInt32Slice()
	defer collections.PutInt32Slice(visitedBuf)

	color := make([]int32, n)
	for !active.Empty() {
		for v := int32(0); v < int32(n); v++ {
			if active.IsActive(v) {
				color[v] = v
			}
		}

		propagateSerial(g, active, color)

		roots := (*rootsBuf)[:0]
		for v := int32(0); v < int32(n); v++ {
			if active.IsActive(v) && color[v] == v {
				roots = append(roots, v)
			}
		}
		*rootsBuf = roots

		for _, c := range roots {
			visited := graph.ReverseBFS(g, active, color, c, c, (*visitedBuf)[:0])
			*visitedBuf = visited
			if len(visited) == 0 {
				continue
			}
			for _, v := range visited {
				sccID[v] = c
				active.Deactivate(v)
			}
			count++
		}
	}

	return Result{SCCID: sccID, Count: count}
}

// trimSerial repeatedly sweeps all active vertices, removing each trivial
// one as a singleton SCC, until a sweep removes nothing.
func trimSerial(g *graph.Graph, active *graph.ActiveSet, sccID []int32, count *int) {
	n := g.NumVertices()
	for {
		removed := false
		for v := int32(0); v < int32(n); v++ {
			if !active.IsActive(v) {
				continue
			}
			if graph.IsTrivial(g, active, v) {
				sccID[v] = v
				active.Deactivate(v)
				*count++
				removed = true
			}
		}
		if !removed {
			return
		}
	}
}

// propagateSerial runs predecessor-min-reduction rounds over all active
// vertices until no color changes in a round.
func propagateSerial(g *graph.Graph, active *graph.ActiveSet, color []int32) {
	n := g.NumVertices()
	for {
		changed := false
		for v := int32(0); v < int32(n); v++ {
			if !active.IsActive(v) {
				continue
			}
			for u := range graph.Predecessors(g, active, v) {
				if color[u] < color[v] {
					color[v] = color[u]
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}
