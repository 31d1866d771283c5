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
	"strings"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

// DefaultContextCheckInterval is how many expansions pass between ctx checks.
const DefaultContextCheckInterval = 1024

// Algorithm names a search strategy.
type Algorithm string

const (
	// AlgorithmAStar is best-first search on f = g + h.
	AlgorithmAStar Algorithm = "astar"

	// AlgorithmDFS is exhaustive depth-first search.
	AlgorithmDFS Algorithm = "dfs"
)

// String returns the algorithm name.
func (a Algorithm) String() string { return string(a) }

// Algorithms returns every supported algorithm in display order.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmAStar, AlgorithmDFS}
}

// ParseAlgorithm converts a name into an Algorithm.
//
// Matching is case-insensitive. "a*" and "a-star" are accepted for A*.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "astar", "a*", "a-star":
		return AlgorithmAStar, nil
	case "dfs":
		return AlgorithmDFS, nil
	default:
		return "", fmt.Errorf("%w: %q (want astar or dfs)", ErrInvalidAlgorithm, s)
	}
}

// Step is a snapshot of one node expansion.
type Step struct {
	// Index is the zero-based expansion number.
	Index int

	// Node is the node being expanded.
	Node graph.NodeID

	// Cell is the grid cell of Node.
	Cell grid.Cell

	// G is the cost from start to Node. For DFS it is the stack depth.
	G int

	// H and F are the heuristic and total estimates. Zero for DFS.
	H float64
	F float64

	// Explored is the running explored count, including Node.
	Explored int

	// Frontier is the number of pending entries after Node was taken:
	// open-set size for A*, stack depth for DFS.
	Frontier int
}

// Observer receives a Step for every expansion.
type Observer func(Step)

// Options configures a search run.
type Options struct {
	// Heuristic selects the A* estimate. Ignored by DFS.
	// Default: heuristic.DefaultKind
	Heuristic heuristic.Kind

	// Observer is called once per expansion. May be nil.
	Observer Observer

	// ContextCheckInterval is how many expansions pass between checks of
	// ctx. Values <= 0 use DefaultContextCheckInterval.
	ContextCheckInterval int
}

// Option is a functional option for configuring a search.
type Option func(*Options)

// WithHeuristic selects the A* heuristic.
func WithHeuristic(k heuristic.Kind) Option {
	return func(o *Options) {
		o.Heuristic = k
	}
}

// WithObserver installs a per-expansion observer.
func WithObserver(fn Observer) Option {
	return func(o *Options) {
		o.Observer = fn
	}
}

// WithContextCheckInterval sets how often ctx is checked.
func WithContextCheckInterval(n int) Option {
	return func(o *Options) {
		o.ContextCheckInterval = n
	}
}

// DefaultOptions returns the defaults applied before any Option.
func DefaultOptions() Options {
	return Options{
		Heuristic:            heuristic.DefaultKind,
		ContextCheckInterval: DefaultContextCheckInterval,
	}
}

func applyOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.ContextCheckInterval <= 0 {
		options.ContextCheckInterval = DefaultContextCheckInterval
	}
	return options
}
