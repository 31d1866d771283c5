// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package search finds start-to-end paths through maze graphs.
//
// Two algorithms are provided: A*, which returns a shortest path under unit
// step cost, and an exhaustive depth-first search, which returns the first
// path found by probing neighbors in insertion order. Both are iterative and
// keep their scratch state (visited flags, costs, back-pointers, frontier
// membership) in a per-run arena indexed by graph.NodeID. The graph is never
// mutated, so a single graph may be searched any number of times.
//
// Thread Safety:
//
//	Each run is single-threaded. Concurrent runs over the same graph are
//	safe because they share only immutable data.
package search

import "errors"

// Sentinel errors for search operations.
var (
	// ErrUnreachable is returned when the frontier is exhausted before the
	// goal is reached. It is always returned alongside a non-nil Result that
	// carries the explored count and visited set.
	ErrUnreachable = errors.New("end is unreachable from start")

	// ErrReconstructionCycle is returned when back-pointers do not lead to
	// the start within the node count.
	ErrReconstructionCycle = errors.New("path reconstruction did not terminate at start")

	// ErrInvalidAlgorithm is returned for an unknown algorithm name.
	ErrInvalidAlgorithm = errors.New("invalid search algorithm")

	// ErrNilGraph is returned when a search is started without a graph.
	ErrNilGraph = errors.New("graph must not be nil")
)
