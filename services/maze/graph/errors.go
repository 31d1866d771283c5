// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package graph converts a maze grid into a searchable node graph.
//
// Every traversable cell the builder scans becomes a Node. Nodes live in a
// dense arena and refer to each other by NodeID, so neighbor links are plain
// integers rather than pointers.
//
// # Scan Order
//
// The builder scans in three passes, and NodeIDs are assigned in that order:
//  1. Top row, left to right: the first open cell is the start node.
//  2. Interior rows and columns (excluding the outer boundary), top to
//     bottom and left to right: every open cell is a node.
//  3. Bottom row, left to right: the first open cell is the end node.
//
// Other open cells on the boundary are not nodes. When a maze has several
// openings in its top or bottom row only the first is used.
//
// # Ownership Model
//
// The Graph owns all Nodes. Neighbor lists hold NodeIDs and are never
// ownership links. Search scratch state (visited, g, h, f, back-pointers)
// is not stored on the Graph; each search run allocates its own.
//
// # Thread Safety
//
// Graph is immutable after Build returns and safe for concurrent reads.
package graph

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
)

// Sentinel errors for graph construction.
var (
	// ErrNoStart is returned when the top row has no open cell.
	ErrNoStart = fmt.Errorf("%w: no open cell in start row", grid.ErrMalformedGrid)

	// ErrNoEnd is returned when the bottom row has no open cell.
	ErrNoEnd = fmt.Errorf("%w: no open cell in end row", grid.ErrMalformedGrid)

	// ErrNilGrid is returned when Build is called without a grid.
	ErrNilGrid = errors.New("grid must not be nil")

	// ErrMaxNodesExceeded is returned when the grid yields more nodes than
	// the configured cap.
	ErrMaxNodesExceeded = errors.New("maximum node count exceeded")

	// ErrBuildCancelled is returned when the context is cancelled during a build.
	ErrBuildCancelled = errors.New("build cancelled")

	// ErrInvariantViolated is returned by Validate when adjacency is not
	// symmetric, contains self loops, duplicates, or non-adjacent cells.
	ErrInvariantViolated = errors.New("graph invariant violated")
)
