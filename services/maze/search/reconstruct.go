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
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
)

// Reconstruct walks back-pointers from goal to start.
//
// Description:
//
//	Follows parents[goal], parents[parents[goal]], ... until start is
//	reached, then returns the walk reversed so it runs start..goal.
//
// Inputs:
//
//	parents - Back-pointers indexed by NodeID. graph.InvalidNode means none.
//	start - The node the walk must terminate at.
//	goal - The node the walk begins at.
//
// Outputs:
//
//	[]graph.NodeID - Path from start to goal inclusive.
//	error - ErrReconstructionCycle if the walk exceeds len(parents) steps,
//	        hits a missing back-pointer, or leaves the arena.
//
// Limitations:
//
//	Only valid immediately after a successful run, while parents still
//	describe the search tree that reached goal.
func Reconstruct(parents []graph.NodeID, start, goal graph.NodeID) ([]graph.NodeID, error) {
	n := len(parents)
	if start < 0 || int(start) >= n || goal < 0 || int(goal) >= n {
		return nil, fmt.Errorf("%w: start %d or goal %d outside %d nodes",
			ErrReconstructionCycle, start, goal, n)
	}

	rev := make([]graph.NodeID, 0, 16)
	cur := goal
	for steps := 0; ; steps++ {
		if steps > n {
			return nil, fmt.Errorf("%w: exceeded %d steps", ErrReconstructionCycle, n)
		}
		rev = append(rev, cur)
		if cur == start {
			break
		}
		next := parents[cur]
		if next < 0 || int(next) >= n {
			return nil, fmt.Errorf("%w: node %d has no back-pointer", ErrReconstructionCycle, cur)
		}
		cur = next
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev, nil
}
