package graph

import "testing"

func edges(pairs ...[2]int32) []Edge {
	es := make([]Edge, len(pairs))
	for i, p := range pairs {
		es[i] = Edge{Src: p[0], Dst: p[1]}
	}
	return es
}

func TestBuild_Empty(t *testing.T) {
	g, err := Build(0, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NumVertices() != 0 || g.NumEdges() != 0 {
		t.Errorf("expected empty graph, got n=%d m=%d", g.NumVertices(), g.NumEdges())
	}
}

func TestBuild_NoEdges(t *testing.T) {
	g, err := Build(3, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NumVertices() != 3 || g.NumEdges() != 0 {
		t.Errorf("expected n=3 m=0, got n=%d m=%d", g.NumVertices(), g.NumEdges())
	}
	for v := int32(0); v < 3; v++ {
		if g.OutDegree(v) != 0 || g.InDegree(v) != 0 {
			t.Errorf("vertex %d: expected zero degree", v)
		}
	}
}

func TestBuild_Invariants(t *testing.T) {
	es := edges([2]int32{0, 1}, [2]int32{1, 2}, [2]int32{2, 0}, [2]int32{1, 2})
	g, err := Build(3, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.NumEdges() != len(es) {
		t.Fatalf("expected m=%d, got %d", len(es), g.NumEdges())
	}

	gotFwd := map[[2]int32]int{}
	for v := int32(0); v < 3; v++ {
		for _, u := range g.outNeighbors(v) {
			gotFwd[[2]int32{v, u}]++
		}
	}
	wantFwd := map[[2]int32]int{}
	for _, e := range es {
		wantFwd[[2]int32{e.Src, e.Dst}]++
	}
	for k, v := range wantFwd {
		if gotFwd[k] != v {
			t.Errorf("forward multiset mismatch at %v: got %d want %d", k, gotFwd[k], v)
		}
	}

	gotRev := map[[2]int32]int{}
	for v := int32(0); v < 3; v++ {
		for _, u := range g.inNeighbors(v) {
			gotRev[[2]int32{u, v}]++
		}
	}
	for k, v := range wantFwd {
		if gotRev[k] != v {
			t.Errorf("reverse multiset mismatch at %v: got %d want %d", k, gotRev[k], v)
		}
	}
}

func TestBuild_SelfLoopAndDuplicates(t *testing.T) {
	es := edges([2]int32{0, 0}, [2]int32{0, 0}, [2]int32{1, 0})
	g, err := Build(2, es)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.OutDegree(0) != 2 {
		t.Errorf("expected self-loop preserved twice, got out-degree %d", g.OutDegree(0))
	}
	if g.InDegree(0) != 3 {
		t.Errorf("expected in-degree 3 on vertex 0, got %d", g.InDegree(0))
	}
}
