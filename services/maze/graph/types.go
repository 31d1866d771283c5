// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package graph

import (
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
)

// NodeID is a dense node identifier assigned in creation order.
//
// It doubles as the arena index and as the final A* tie-break.
type NodeID int32

// InvalidNode marks the absence of a node.
const InvalidNode NodeID = -1

// Node is one traversable cell.
type Node struct {
	// ID is the node's position in the graph arena.
	ID NodeID

	// Cell is the grid coordinate of the node.
	Cell grid.Cell

	// Neighbors are adjacent nodes in probe order: up, down, left, right.
	// At most four entries, never the node itself, no duplicates.
	Neighbors []NodeID
}

// Graph is the node arena plus start and end designations.
type Graph struct {
	grid  *grid.Grid
	nodes []Node

	// cellIndex maps row*cols+col to a NodeID, or InvalidNode.
	cellIndex []NodeID

	start NodeID
	end   NodeID
	edges int
}

// Grid returns the grid the graph was built from.
func (g *Graph) Grid() *grid.Grid { return g.grid }

// Start returns the start node ID.
func (g *Graph) Start() NodeID { return g.start }

// End returns the end node ID.
func (g *Graph) End() NodeID { return g.end }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Node returns the node with the given ID.
//
// The returned pointer refers into the arena. Callers must not mutate it.
// Passing an ID outside [0, NodeCount) panics.
func (g *Graph) Node(id NodeID) *Node {
	return &g.nodes[id]
}

// Nodes returns the arena. Callers must not mutate it.
func (g *Graph) Nodes() []Node { return g.nodes }

// Neighbors returns the neighbor IDs of a node.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	return g.nodes[id].Neighbors
}

// CellOf returns the grid cell of a node.
func (g *Graph) CellOf(id NodeID) grid.Cell {
	return g.nodes[id].Cell
}

// Lookup returns the node at a cell, if any.
func (g *Graph) Lookup(c grid.Cell) (NodeID, bool) {
	if !g.grid.InBounds(c) {
		return InvalidNode, false
	}
	id := g.cellIndex[c.Row*g.grid.Cols()+c.Col]
	return id, id != InvalidNode
}

// Adjacent reports whether b is a neighbor of a.
func (g *Graph) Adjacent(a, b NodeID) bool {
	for _, n := range g.nodes[a].Neighbors {
		if n == b {
			return true
		}
	}
	return false
}

// Cells maps a sequence of node IDs to their cells.
func (g *Graph) Cells(ids []NodeID) []grid.Cell {
	out := make([]grid.Cell, len(ids))
	for i, id := range ids {
		out[i] = g.nodes[id].Cell
	}
	return out
}

// Validate checks the adjacency invariants.
//
// Description:
//
//	Verifies that every neighbor link is symmetric, joins two cells that
//	are 4-directionally adjacent, is not a self loop, and is not
//	duplicated. Intended for tests and debug builds; Build always produces
//	a valid graph.
//
// Outputs:
//
//	error - Wraps ErrInvariantViolated describing the first violation found.
func (g *Graph) Validate() error {
	for i := range g.nodes {
		n := &g.nodes[i]
		if len(n.Neighbors) > 4 {
			return fmt.Errorf("%w: node %d has %d neighbors", ErrInvariantViolated, n.ID, len(n.Neighbors))
		}
		seen := make(map[NodeID]struct{}, len(n.Neighbors))
		for _, nb := range n.Neighbors {
			if nb == n.ID {
				return fmt.Errorf("%w: node %d is its own neighbor", ErrInvariantViolated, n.ID)
			}
			if _, dup := seen[nb]; dup {
				return fmt.Errorf("%w: node %d lists neighbor %d twice", ErrInvariantViolated, n.ID, nb)
			}
			seen[nb] = struct{}{}

			if nb < 0 || int(nb) >= len(g.nodes) {
				return fmt.Errorf("%w: node %d references missing node %d", ErrInvariantViolated, n.ID, nb)
			}
			if !g.Adjacent(nb, n.ID) {
				return fmt.Errorf("%w: edge %d-%d is not symmetric", ErrInvariantViolated, n.ID, nb)
			}
			if manhattan(n.Cell, g.nodes[nb].Cell) != 1 {
				return fmt.Errorf("%w: nodes %d and %d are not grid-adjacent", ErrInvariantViolated, n.ID, nb)
			}
		}
	}
	return nil
}

func manhattan(a, b grid.Cell) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}
