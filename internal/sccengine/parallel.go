package sccengine

import (
	"context"

	"github.com/colorscc/scc/internal/graph"
	"github.com/colorscc/scc/pkg/collections"
	"github.com/colorscc/scc/pkg/parallel"
)

// Parallel computes the SCC decomposition of g using the same trim-then-
// color algorithm as Serial, but with every phase partitioned into
// vertex-index blocks and run across workers concurrently, joined by a
// barrier between phases. workers <= 0 selects the package default.
// Unlike the loader, this runs to completion or fails outright; it takes
// no context, since the computation itself is never cancelled mid-flight.
//
// Writes within a phase are index-partitioned (each worker only ever
// writes active/color/sccID entries inside its own block, or — during
// the per-color peel — entries belonging to its own disjoint color
// class), so no phase needs a lock; only the per-phase scalar counters
// (removed count, changed flag) are combined after the barrier, via sum
// or logical OR.
func Parallel(g *graph.Graph, workers int) Result {
	ctx := context.Background()

	n := g.NumVertices()
	sccID := make([]int32, n)
	active := graph.NewActiveSet(n)
	count := 0

	cfg := parallel.DefaultPoolConfig()
	if workers > 0 {
		cfg = cfg.WithWorkers(workers)
	}

	vertices := make([]int32, n)
	for i := range vertices {
		vertices[i] = int32(i)
	}

	trimParallel(ctx, cfg, g, active, sccID, &count, vertices)

	color := make([]int32, n)
	for !active.Empty() {
		initColorsParallel(ctx, cfg, active, color, vertices)
		propagateParallel(ctx, cfg, g, active, color, vertices)

		roots := gatherRootsParallel(ctx, cfg, active, color, vertices)
		peelParallel(ctx, cfg, g, active, color, sccID, &count, roots)
	}

	return Result{SCCID: sccID, Count: count}
}

func sumInt(results []int) int {
	total := 0
	for _, r := range results {
		total += r
	}
	return total
}

// trimParallel repeats vertex-block-parallel trim sweeps until a sweep
// removes nothing. Any trivial vertices a bounded sweep count would have
// left behind are still absorbed correctly by the subsequent color
// phase, so running to a genuine fixed point here costs nothing but a
// few extra cheap sweeps.
func trimParallel(ctx context.Context, cfg parallel.PoolConfig, g *graph.Graph, active *graph.ActiveSet, sccID []int32, count *int, vertices []int32) {
	cp := parallel.NewChunkProcessor[int32, int](cfg)
	for {
		removed := cp.ProcessChunks(ctx, vertices,
			func(ctx context.Context, chunk []int32, workerID int) int {
				local := 0
				for _, v := range chunk {
					if !active.IsActive(v) {
						continue
					}
					if graph.IsTrivial(g, active, v) {
						sccID[v] = v
						active.Deactivate(v)
						local++
					}
				}
				return local
			},
			sumInt,
		)
		*count += removed
		if removed == 0 {
			return
		}
	}
}

func initColorsParallel(ctx context.Context, cfg parallel.PoolConfig, active *graph.ActiveSet, color []int32, vertices []int32) {
	cp := parallel.NewChunkProcessor[int32, struct{}](cfg)
	cp.ProcessChunks(ctx, vertices,
		func(ctx context.Context, chunk []int32, workerID int) struct{} {
			for _, v := range chunk {
				if active.IsActive(v) {
					color[v] = v
				}
			}
			return struct{}{}
		},
		func(results []struct{}) struct{} { return struct{}{} },
	)
}

func propagateParallel(ctx context.Context, cfg parallel.PoolConfig, g *graph.Graph, active *graph.ActiveSet, color []int32, vertices []int32) {
	cp := parallel.NewChunkProcessor[int32, bool](cfg)
	for {
		changed := cp.ProcessChunks(ctx, vertices,
			func(ctx context.Context, chunk []int32, workerID int) bool {
				localChanged := false
				for _, v := range chunk {
					if !active.IsActive(v) {
						continue
					}
					for u := range graph.Predecessors(g, active, v) {
						if color[u] < color[v] {
							color[v] = color[u]
							localChanged = true
						}
					}
				}
				return localChanged
			},
			orBool,
		)
		if !changed {
			return
		}
	}
}

func orBool(results []bool) bool {
	for _, r := range results {
		if r {
			return true
		}
	}
	return false
}

func gatherRootsParallel(ctx context.Context, cfg parallel.PoolConfig, active *graph.ActiveSet, color []int32, vertices []int32) []int32 {
	cp := parallel.NewChunkProcessor[int32, []int32](cfg)
	return cp.ProcessChunks(ctx, vertices,
		func(ctx context.Context, chunk []int32, workerID int) []int32 {
			// localBuf is sourced from the pool purely to give the
			// accumulation a sane starting capacity instead of growing
			// from nil; it is released back before the chunk's result is
			// handed to the reducer, so the copy below is the only
			// allocation this worker makes for its root list.
			localBuf := collections.GetInt32Slice()
			local := (*localBuf)[:0]
			for _, v := range chunk {
				if active.IsActive(v) && color[v] == v {
					local = append(local, v)
				}
			}
			owned := append([]int32(nil), local...)
			*localBuf = local
			collections.PutInt32Slice(localBuf)
			return owned
		},
		func(results [][]int32) []int32 {
			var all []int32
			for _, r := range results {
				all = append(all, r...)
			}
			return all
		},
	)
}

// peelParallel runs the reverse-BFS peel for every root in parallel,
// partitioned into contiguous blocks of roots (each root names one
// color class, and each worker peels every root in its block): distinct color
// classes are provably disjoint, so distinct roots' peels never touch
// the same vertex and need no cross-worker synchronization beyond the
// final sum reduction of the SCC counter.
func peelParallel(ctx context.Context, cfg parallel.PoolConfig, g *graph.Graph, active *graph.ActiveSet, color []int32, sccID []int32, count *int, roots []int32) {
	if len(roots) == 0 {
		return
	}
	cp := parallel.NewChunkProcessor[int32, int](cfg)
	found := cp.ProcessChunks(ctx, roots,
		func(ctx context.Context, chunk []int32, workerID int) int {
			// visitedBuf is reused across every root in this worker's
			// chunk: distinct roots' peels never touch the same vertex
			// (distinct color classes are disjoint), so it is always
			// safe to reset and refill between roots.
			visitedBuf := collections.GetInt32Slice()
			defer collections.PutInt32Slice(visitedBuf)

			local := 0
			for _, c := range chunk {
				visited := graph.ReverseBFS(g, active, color, c, c, (*visitedBuf)[:0])
				*visitedBuf = visited
				if len(visited) == 0 {
					continue
				}
				for _, v := range visited {
					sccID[v] = c
					active.Deactivate(v)
				}
				local++
			}
			return local
		},
		sumInt,
	)
	*count += found
}
