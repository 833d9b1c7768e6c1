package graph

// ActiveSet is a dense boolean view selecting an induced subgraph of a
// Graph without mutating it. It is owned by the SCC engine, not the
// graph: the same immutable Graph can be shared read-only across workers
// while each engine invocation carries its own ActiveSet.
//
// A freshly created ActiveSet has every vertex active; membership is
// monotonically flipped to false as vertices are assigned to an SCC.
//
// Backed by one byte per vertex rather than a packed bitset: the parallel
// driver deactivates vertices from many goroutines at once, each
// restricted to its own vertex-block, and a packed bitset would make two
// goroutines race on the same 64-bit word when their vertices share it.
// One slice slot per vertex keeps those writes to genuinely disjoint
// memory locations.
type ActiveSet struct {
	flags []uint8
}

// NewActiveSet returns an ActiveSet over n vertices with every vertex
// active.
func NewActiveSet(n int) *ActiveSet {
	flags := make([]uint8, n)
	for i := range flags {
		flags[i] = 1
	}
	return &ActiveSet{flags: flags}
}

// IsActive reports whether v is still active.
func (a *ActiveSet) IsActive(v int32) bool {
	return a.flags[v] != 0
}

// Deactivate marks v inactive. Deactivation is monotonic: once cleared, a
// vertex is never reactivated within the lifetime of an ActiveSet.
func (a *ActiveSet) Deactivate(v int32) {
	a.flags[v] = 0
}

// Count returns the number of currently active vertices.
func (a *ActiveSet) Count() int {
	n := 0
	for _, f := range a.flags {
		if f != 0 {
			n++
		}
	}
	return n
}

// Empty reports whether no vertex is active.
func (a *ActiveSet) Empty() bool {
	for _, f := range a.flags {
		if f != 0 {
			return false
		}
	}
	return true
}
