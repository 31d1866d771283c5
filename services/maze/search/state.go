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

import "github.com/AleutianAI/AleutianMaze/services/maze/graph"

// notPending marks a node that is not in the frontier.
const notPending = -1

// state is the per-run scratch arena, indexed by NodeID.
//
// Ownership: a state belongs to exactly one run and is discarded (or
// surfaced through Result) when the run returns.
type state struct {
	visited []bool
	g       []int
	h       []float64
	f       []float64
	parent  []graph.NodeID

	// heapIndex is the node's position in the frontier, or notPending.
	heapIndex []int

	explored int
}

func newState(n int) *state {
	s := &state{
		visited:   make([]bool, n),
		g:         make([]int, n),
		h:         make([]float64, n),
		f:         make([]float64, n),
		parent:    make([]graph.NodeID, n),
		heapIndex: make([]int, n),
	}
	for i := 0; i < n; i++ {
		s.parent[i] = graph.InvalidNode
		s.heapIndex[i] = notPending
	}
	return s
}

// pending reports whether id is in the frontier.
func (s *state) pending(id graph.NodeID) bool {
	return s.heapIndex[id] != notPending
}
