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
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
)

// Default builder configuration values.
const (
	// DefaultMaxNodes is the default node cap. 0 means the grid size bounds it.
	DefaultMaxNodes = 0

	// contextCheckInterval is how many scanned rows pass between ctx checks.
	contextCheckInterval = 64
)

// ProgressPhase indicates which phase of building is in progress.
type ProgressPhase int

const (
	// ProgressPhaseStart indicates the top row is being scanned.
	ProgressPhaseStart ProgressPhase = iota

	// ProgressPhaseInterior indicates interior cells are being collected.
	ProgressPhaseInterior

	// ProgressPhaseEnd indicates the bottom row is being scanned.
	ProgressPhaseEnd

	// ProgressPhaseLinking indicates neighbor links are being resolved.
	ProgressPhaseLinking
)

// String returns the string representation of the ProgressPhase.
func (p ProgressPhase) String() string {
	switch p {
	case ProgressPhaseStart:
		return "start"
	case ProgressPhaseInterior:
		return "interior"
	case ProgressPhaseEnd:
		return "end"
	case ProgressPhaseLinking:
		return "linking"
	default:
		return "unknown"
	}
}

// BuildProgress contains progress information during a build.
type BuildProgress struct {
	Phase        ProgressPhase
	NodesCreated int
}

// ProgressFunc is a callback for build progress updates.
type ProgressFunc func(progress BuildProgress)

// BuilderOptions configures Builder behavior.
type BuilderOptions struct {
	// MaxNodes caps the number of nodes. Build fails with
	// ErrMaxNodesExceeded once the cap would be crossed.
	// Default: 0 (no cap)
	MaxNodes int

	// ProgressCallback is called at each phase boundary. May be nil.
	ProgressCallback ProgressFunc
}

// DefaultBuilderOptions returns sensible defaults.
func DefaultBuilderOptions() BuilderOptions {
	return BuilderOptions{
		MaxNodes: DefaultMaxNodes,
	}
}

// BuilderOption is a functional option for configuring Builder.
type BuilderOption func(*BuilderOptions)

// WithMaxNodes sets the node cap. Values <= 0 disable the cap.
func WithMaxNodes(n int) BuilderOption {
	return func(o *BuilderOptions) {
		o.MaxNodes = n
	}
}

// WithProgressCallback sets the progress callback.
func WithProgressCallback(fn ProgressFunc) BuilderOption {
	return func(o *BuilderOptions) {
		o.ProgressCallback = fn
	}
}

// Builder converts grids into graphs.
//
// Thread Safety:
//
//	Builder is safe for concurrent use. Each Build call operates on its
//	own state.
type Builder struct {
	options BuilderOptions
}

// NewBuilder creates a new Builder with the given options.
//
// Example:
//
//	builder := NewBuilder(WithMaxNodes(1_000_000))
//	g, err := builder.Build(ctx, maze)
func NewBuilder(opts ...BuilderOption) *Builder {
	options := DefaultBuilderOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Builder{options: options}
}

// Build is shorthand for NewBuilder(opts...).Build(ctx, g).
func Build(ctx context.Context, g *grid.Grid, opts ...BuilderOption) (*Graph, error) {
	return NewBuilder(opts...).Build(ctx, g)
}

// buildState holds mutable state during a single build.
type buildState struct {
	graph *Graph
	cols  int
}

// addNode appends a node for cell c to the arena.
func (b *Builder) addNode(s *buildState, c grid.Cell) (NodeID, error) {
	if b.options.MaxNodes > 0 && len(s.graph.nodes) >= b.options.MaxNodes {
		return InvalidNode, fmt.Errorf("%w: limit %d", ErrMaxNodesExceeded, b.options.MaxNodes)
	}
	id := NodeID(len(s.graph.nodes))
	s.graph.nodes = append(s.graph.nodes, Node{ID: id, Cell: c})
	s.graph.cellIndex[c.Row*s.cols+c.Col] = id
	return id, nil
}

// Build constructs a graph from a grid.
//
// Description:
//
//	Scans the top row for the start node, the interior for traversable
//	nodes, and the bottom row for the end node, then links every node to
//	the nodes at its up, down, left and right cells, in that order.
//
// Inputs:
//
//	ctx - Context for cancellation. Checked periodically while scanning.
//	g - The grid. Must not be nil.
//
// Outputs:
//
//	*Graph - The immutable graph.
//	error - ErrNoStart or ErrNoEnd (both wrap grid.ErrMalformedGrid),
//	        ErrMaxNodesExceeded, ErrNilGrid, or ErrBuildCancelled.
//
// Invariants:
//
//	Start has NodeID 0. End has the largest NodeID. Neighbor relations
//	are symmetric.
func (b *Builder) Build(ctx context.Context, g *grid.Grid) (result *Graph, err error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	ctx, span := startBuildSpan(ctx, g.Rows(), g.Cols())
	defer span.End()

	startTime := time.Now()
	defer func() {
		nodes, edges := 0, 0
		if result != nil {
			nodes, edges = result.NodeCount(), result.EdgeCount()
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		setBuildSpanResult(span, nodes, edges)
		recordBuildMetrics(ctx, time.Since(startTime), nodes, edges, err == nil)
	}()

	s := &buildState{
		graph: &Graph{
			grid:      g,
			nodes:     make([]Node, 0, g.OpenCount()),
			cellIndex: make([]NodeID, g.Size()),
			start:     InvalidNode,
			end:       InvalidNode,
		},
		cols: g.Cols(),
	}
	for i := range s.graph.cellIndex {
		s.graph.cellIndex[i] = InvalidNode
	}

	// Phase 1: start node, first open cell of the top row.
	b.reportProgress(s, ProgressPhaseStart)
	if c, ok := firstOpenInRow(g, 0); ok {
		if s.graph.start, err = b.addNode(s, c); err != nil {
			return nil, err
		}
	} else {
		return nil, ErrNoStart
	}

	// Phase 2: interior cells.
	b.reportProgress(s, ProgressPhaseInterior)
	for r := 1; r < g.Rows()-1; r++ {
		if r%contextCheckInterval == 0 {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrBuildCancelled, ctxErr)
			}
		}
		for c := 1; c < g.Cols()-1; c++ {
			cell := grid.Cell{Row: r, Col: c}
			if !g.IsOpen(cell) {
				continue
			}
			if _, err = b.addNode(s, cell); err != nil {
				return nil, err
			}
		}
	}

	// Phase 3: end node, first open cell of the bottom row.
	b.reportProgress(s, ProgressPhaseEnd)
	if c, ok := firstOpenInRow(g, g.Rows()-1); ok {
		if s.graph.end, err = b.addNode(s, c); err != nil {
			return nil, err
		}
	} else {
		return nil, ErrNoEnd
	}

	// Phase 4: neighbor links.
	b.reportProgress(s, ProgressPhaseLinking)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildCancelled, err)
	}
	b.link(s)

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		slog.Debug("maze graph built",
			slog.Int("rows", g.Rows()),
			slog.Int("cols", g.Cols()),
			slog.Int("nodes", s.graph.NodeCount()),
			slog.Int("edges", s.graph.EdgeCount()),
			slog.Duration("duration", time.Since(startTime)),
		)
	}

	return s.graph, nil
}

// link resolves neighbor lists.
//
// Each node records the nodes at its own up, down, left and right cells.
// Because adjacency of cells is symmetric, so is the resulting relation,
// and a node is never probed twice from the same side, so lists carry no
// duplicates.
func (b *Builder) link(s *buildState) {
	total := 0
	for i := range s.graph.nodes {
		n := &s.graph.nodes[i]
		probes := [4]grid.Cell{n.Cell.Up(), n.Cell.Down(), n.Cell.Left(), n.Cell.Right()}

		var buf [4]NodeID
		neighbors := buf[:0]
		for _, p := range probes {
			if id, ok := s.graph.Lookup(p); ok && id != n.ID {
				neighbors = append(neighbors, id)
			}
		}
		if len(neighbors) > 0 {
			n.Neighbors = append(make([]NodeID, 0, len(neighbors)), neighbors...)
		}
		total += len(neighbors)
	}
	s.graph.edges = total / 2
}

func (b *Builder) reportProgress(s *buildState, phase ProgressPhase) {
	if b.options.ProgressCallback == nil {
		return
	}
	b.options.ProgressCallback(BuildProgress{
		Phase:        phase,
		NodesCreated: len(s.graph.nodes),
	})
}

// firstOpenInRow returns the leftmost open cell of a row.
func firstOpenInRow(g *grid.Grid, row int) (grid.Cell, bool) {
	for c := 0; c < g.Cols(); c++ {
		cell := grid.Cell{Row: row, Col: c}
		if g.IsOpen(cell) {
			return cell, true
		}
	}
	return grid.Cell{}, false
}
