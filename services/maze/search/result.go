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
	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

// Result is the outcome of a search run.
//
// A Result is returned for both success and ErrUnreachable. On
// ErrUnreachable, Found is false, Path and Cells are nil, and Explored and
// Visited describe the part of the graph reachable from start.
type Result struct {
	// Algorithm is the strategy that produced the result.
	Algorithm Algorithm

	// Heuristic is the A* estimate used. Empty for DFS.
	Heuristic heuristic.Kind

	// Found is true when a path was found.
	Found bool

	// Path lists node IDs from start to end inclusive.
	Path []graph.NodeID

	// Cells lists the grid cells of Path.
	Cells []grid.Cell

	// Explored counts nodes marked visited during the run.
	Explored int

	// Visited is indexed by NodeID.
	Visited []bool

	// Cost is the number of steps on Path: len(Path) - 1.
	Cost int
}

// Length returns the number of nodes on the path.
func (r *Result) Length() int {
	return len(r.Path)
}

// OnPath returns a set of NodeIDs on the path, indexed by NodeID.
func (r *Result) OnPath() []bool {
	on := make([]bool, len(r.Visited))
	for _, id := range r.Path {
		on[id] = true
	}
	return on
}

func newResult(alg Algorithm, k heuristic.Kind, st *state) *Result {
	return &Result{
		Algorithm: alg,
		Heuristic: k,
		Explored:  st.explored,
		Visited:   st.visited,
	}
}

func (r *Result) setPath(g *graph.Graph, path []graph.NodeID) {
	r.Found = true
	r.Path = path
	r.Cells = g.Cells(path)
	r.Cost = len(path) - 1
}
