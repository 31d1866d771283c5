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
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

// ==============================================================================
// Metrics
// ==============================================================================

var (
	// searchTotal counts runs by algorithm and result.
	// Results: "success", "unreachable", "canceled", "reconstruction_cycle",
	// "invalid_input", "panic", "other".
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "maze_search_total",
		Help: "Total maze searches by algorithm and result",
	}, []string{"algorithm", "result"})

	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maze_search_duration_seconds",
		Help:    "Maze search duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})

	searchExplored = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maze_search_nodes_explored",
		Help:    "Nodes explored per maze search",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	}, []string{"algorithm"})
)

// classifySearchError maps an error to a low-cardinality metric label.
func classifySearchError(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnreachable):
		return "unreachable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.Is(err, ErrReconstructionCycle):
		return "reconstruction_cycle"
	case errors.Is(err, ErrInvalidAlgorithm), errors.Is(err, ErrNilGraph),
		errors.Is(err, heuristic.ErrInvalidSelector):
		return "invalid_input"
	default:
		return "other"
	}
}

// ==============================================================================
// OTel Tracer Initialization
// ==============================================================================

var (
	tracerOnce   sync.Once
	searchTracer trace.Tracer
)

// getTracer returns the OTel tracer, initializing it lazily if needed.
//
// Thread Safety: Safe for concurrent use (sync.Once).
func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		searchTracer = otel.Tracer("aleutian.maze.search")
	})
	return searchTracer
}
