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
	"context"
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
)

// dfsFrame is one level of the explicit DFS stack.
type dfsFrame struct {
	node graph.NodeID
	next int // index into node's neighbor list
}

// DFS finds a path from g.Start() to g.End() by depth-first search.
//
// Description:
//
//	Visits nodes in the same order as the recursive formulation: a node is
//	marked visited and counted on entry, the goal check follows, then
//	unvisited neighbors are tried in insertion order and the first branch
//	that reaches the goal wins. A dead end pops its frame. The path is the
//	stack contents when the goal is entered.
//
// Inputs:
//
//	ctx - Checked every ContextCheckInterval expansions.
//	g - The maze graph. Must not be nil.
//	opts - WithObserver, WithContextCheckInterval. The heuristic is ignored.
//
// Outputs:
//
//	*Result - Non-nil whenever err is nil, ErrUnreachable, or a context error.
//	error - ErrUnreachable, a wrapped ctx.Err(), or ErrNilGraph.
//
// Limitations:
//
//	The path is not necessarily shortest.
func DFS(ctx context.Context, g *graph.Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	options := applyOptions(opts)

	st := newState(g.NodeCount())
	start, goal := g.Start(), g.End()
	stack := make([]dfsFrame, 0, 64)
	iter := 0

	// enter marks id visited and reports whether it is the goal.
	enter := func(id graph.NodeID) bool {
		st.visited[id] = true
		st.explored++
		st.g[id] = len(stack)
		stack = append(stack, dfsFrame{node: id})
		if options.Observer != nil {
			options.Observer(Step{
				Index:    iter,
				Node:     id,
				Cell:     g.CellOf(id),
				G:        st.g[id],
				Explored: st.explored,
				Frontier: len(stack),
			})
		}
		iter++
		return id == goal
	}

	finish := func() *Result {
		result := newResult(AlgorithmDFS, "", st)
		path := make([]graph.NodeID, len(stack))
		for i, f := range stack {
			path[i] = f.node
		}
		result.setPath(g, path)
		return result
	}

	if err := ctx.Err(); err != nil {
		return newResult(AlgorithmDFS, "", st), fmt.Errorf("dfs cancelled: %w", err)
	}
	if enter(start) {
		return finish(), nil
	}

	for len(stack) > 0 {
		if iter%options.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return newResult(AlgorithmDFS, "", st),
					fmt.Errorf("dfs cancelled after %d expansions: %w", st.explored, err)
			}
		}

		top := &stack[len(stack)-1]
		neighbors := g.Neighbors(top.node)

		descended := false
		for top.next < len(neighbors) {
			nb := neighbors[top.next]
			top.next++
			if st.visited[nb] {
				continue
			}
			st.parent[nb] = top.node
			if enter(nb) {
				return finish(), nil
			}
			descended = true
			break
		}
		if !descended {
			stack = stack[:len(stack)-1]
		}
	}

	return newResult(AlgorithmDFS, "", st), ErrUnreachable
}
