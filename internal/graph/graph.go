// Package graph provides a dual compressed-sparse representation of a
// directed graph (forward and reverse adjacency) built from an edge stream
// in O(n+m) time via counting sort, plus the active-vertex mask and
// traversal primitives the coloring SCC engine drives it with.
package graph

import (
	"github.com/colorscc/scc/pkg/apperrors"
)

// Graph is an immutable, read-only-after-construction directed graph with
// both a forward (source-major) and reverse (destination-major) compressed
// index. Both indices are built from the same multiset of edges; neither
// deduplicates nor sorts beyond the counting-sort bucketing, so self-loops
// and duplicate edges are preserved verbatim.
type Graph struct {
	n int

	fwdOff []int32
	fwdDst []int32

	revOff []int32
	revSrc []int32
}

// NumVertices returns n, the number of vertices.
func (g *Graph) NumVertices() int { return g.n }

// NumEdges returns m, the number of edges (counting duplicates).
func (g *Graph) NumEdges() int { return len(g.fwdDst) }

// OutDegree returns the number of outgoing edges of v.
func (g *Graph) OutDegree(v int32) int {
	return int(g.fwdOff[v+1] - g.fwdOff[v])
}

// InDegree returns the number of incoming edges of v.
func (g *Graph) InDegree(v int32) int {
	return int(g.revOff[v+1] - g.revOff[v])
}

// outNeighbors returns the borrowed slice of v's outgoing neighbors,
// unfiltered by any active mask.
func (g *Graph) outNeighbors(v int32) []int32 {
	return g.fwdDst[g.fwdOff[v]:g.fwdOff[v+1]]
}

// inNeighbors returns the borrowed slice of v's incoming neighbors,
// unfiltered by any active mask.
func (g *Graph) inNeighbors(v int32) []int32 {
	return g.revSrc[g.revOff[v]:g.revOff[v+1]]
}

// Edge is a single (source, destination) pair, 0-based.
type Edge struct {
	Src, Dst int32
}

// Build constructs a Graph from n vertices and the given edge list using a
// two-pass counting sort: a first pass accumulates per-vertex degrees into
// the offset arrays, which are then prefix-summed in place; a second pass
// scatters each edge into its bucket via per-vertex cursor arrays. This is
// O(n+m) time and O(n) scratch, and requires no comparison sort.
//
// Every Src and Dst must lie in [0, n); Build does not validate this
// itself (that is the loader's responsibility) and will panic on an
// out-of-range index, since by the time edges reach here they are assumed
// already validated.
func Build(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, apperrors.New(apperrors.KindArgument, "negative vertex count")
	}

	m := len(edges)
	fwdOff := make([]int32, n+1)
	revOff := make([]int32, n+1)

	for _, e := range edges {
		fwdOff[e.Src+1]++
		revOff[e.Dst+1]++
	}
	for i := 1; i <= n; i++ {
		fwdOff[i] += fwdOff[i-1]
		revOff[i] += revOff[i-1]
	}

	fwdDst := make([]int32, m)
	revSrc := make([]int32, m)

	fcur := make([]int32, n)
	rcur := make([]int32, n)
	copy(fcur, fwdOff[:n])
	copy(rcur, revOff[:n])

	for _, e := range edges {
		fwdDst[fcur[e.Src]] = e.Dst
		fcur[e.Src]++
		revSrc[rcur[e.Dst]] = e.Src
		rcur[e.Dst]++
	}

	return &Graph{
		n:      n,
		fwdOff: fwdOff,
		fwdDst: fwdDst,
		revOff: revOff,
		revSrc: revSrc,
	}, nil
}
