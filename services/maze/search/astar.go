// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package search

import (
	"container/heap"
	"context"
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

// AStar finds a shortest path from g.Start() to g.End().
//
// Description:
//
//	Best-first search on f = g + h with unit step cost. The start node
//	has g = h = f = 0. Each expansion takes the frontier minimum (f, then
//	h, then NodeID), marks it visited, and relaxes every unvisited
//	neighbor: a node not yet pending is pushed; a pending node is updated
//	only when the new f is lower, or equal with a lower g, and its heap
//	position is restored.
//
// Inputs:
//
//	ctx - Checked every ContextCheckInterval expansions.
//	g - The maze graph. Must not be nil.
//	opts - WithHeuristic, WithObserver, WithContextCheckInterval.
//
// Outputs:
//
//	*Result - Non-nil whenever err is nil, ErrUnreachable, or a context error.
//	error - ErrUnreachable, ErrReconstructionCycle, a wrapped ctx.Err(),
//	        ErrNilGraph, or heuristic.ErrInvalidSelector.
//
// Complexity:
//
//	O(V log V) time, O(V) memory.
func AStar(ctx context.Context, g *graph.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	options := applyOptions(opts)
	if !options.Heuristic.Valid() {
		return nil, fmt.Errorf("a*: %w: %q", heuristic.ErrInvalidSelector, options.Heuristic)
	}
	estimate := options.Heuristic.Func()

	n := g.NodeCount()
	st := newState(n)
	open := newFrontier(st, n)

	start, goal := g.Start(), g.End()
	goalCell := g.CellOf(goal)

	heap.Push(open, start)

	for iter := 0; open.Len() > 0; iter++ {
		if iter%options.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return newResult(AlgorithmAStar, options.Heuristic, st),
					fmt.Errorf("a* cancelled after %d expansions: %w", st.explored, err)
			}
		}

		cur := heap.Pop(open).(graph.NodeID)
		st.visited[cur] = true
		st.explored++

		if options.Observer != nil {
			options.Observer(Step{
				Index:    iter,
				Node:     cur,
				Cell:     g.CellOf(cur),
				G:        st.g[cur],
				H:        st.h[cur],
				F:        st.f[cur],
				Explored: st.explored,
				Frontier: open.Len(),
			})
		}

		if cur == goal {
			result := newResult(AlgorithmAStar, options.Heuristic, st)
			path, err := Reconstruct(st.parent, start, goal)
			if err != nil {
				return result, fmt.Errorf("a*: %w", err)
			}
			result.setPath(g, path)
			return result, nil
		}

		for _, nb := range g.Neighbors(cur) {
			if st.visited[nb] {
				continue
			}
			ng := st.g[cur] + 1
			nh := estimate(g.CellOf(nb), goalCell)
			nf := float64(ng) + nh

			if !st.pending(nb) {
				st.g[nb], st.h[nb], st.f[nb] = ng, nh, nf
				st.parent[nb] = cur
				heap.Push(open, nb)
				continue
			}
			if nf < st.f[nb] || (nf == st.f[nb] && ng < st.g[nb]) {
				st.g[nb], st.h[nb], st.f[nb] = ng, nh, nf
				st.parent[nb] = cur
				heap.Fix(open, st.heapIndex[nb])
			}
		}
	}

	return newResult(AlgorithmAStar, options.Heuristic, st), ErrUnreachable
}
