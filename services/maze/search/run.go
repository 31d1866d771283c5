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
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
)

// Run dispatches a search by algorithm.
//
// Description:
//
//	Runs AStar or DFS, wrapping the run in an OTel span and recording
//	Prometheus metrics labelled by algorithm and outcome. A panic inside
//	the run is recovered and returned as an error.
//
// Inputs:
//
//	ctx - Context for cancellation and tracing.
//	g - The maze graph.
//	alg - AlgorithmAStar or AlgorithmDFS.
//	opts - Search options.
//
// Outputs:
//
//	*Result - See AStar and DFS. Non-nil alongside ErrUnreachable.
//	error - As returned by the algorithm, or ErrInvalidAlgorithm.
//
// Example:
//
//	res, err := search.Run(ctx, g, search.AlgorithmAStar,
//	    search.WithHeuristic(heuristic.KindEuclidean))
//	if errors.Is(err, search.ErrUnreachable) {
//	    fmt.Println("no path; explored", res.Explored)
//	}
func Run(ctx context.Context, g *graph.Graph, alg Algorithm, opts ...Option) (result *Result, err error) {
	start := time.Now()
	label := string(alg)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s search: %v", label, r)
			result = nil
			searchTotal.WithLabelValues(label, "panic").Inc()
			slog.ErrorContext(ctx, "maze search panic recovered",
				slog.String("algorithm", label),
				slog.Any("panic", r),
			)
			return
		}

		searchDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
		searchTotal.WithLabelValues(label, classifySearchError(err)).Inc()
		if result != nil {
			searchExplored.WithLabelValues(label).Observe(float64(result.Explored))
		}
	}()

	if ctx == nil {
		return nil, errors.New("ctx must not be nil")
	}

	var runFn func(context.Context, *graph.Graph, ...Option) (*Result, error)
	switch alg {
	case AlgorithmAStar:
		runFn = AStar
	case AlgorithmDFS:
		runFn = DFS
	default:
		label = "unknown"
		return nil, fmt.Errorf("%w: %q", ErrInvalidAlgorithm, alg)
	}

	nodeCount := 0
	if g != nil {
		nodeCount = g.NodeCount()
	}
	ctx, span := getTracer().Start(ctx, "search.Run",
		trace.WithAttributes(
			attribute.String("search.algorithm", label),
			attribute.Int("graph.node_count", nodeCount),
		),
	)
	defer span.End()

	result, err = runFn(ctx, g, opts...)

	if result != nil {
		span.SetAttributes(
			attribute.Bool("search.found", result.Found),
			attribute.Int("search.explored", result.Explored),
			attribute.Int("search.path_length", result.Length()),
		)
	}
	if err != nil && !errors.Is(err, ErrUnreachable) {
		span.RecordError(err)
		span.SetStatus(codes.Error, classifySearchError(err))
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) && result != nil {
		slog.DebugContext(ctx, "maze search finished",
			slog.String("algorithm", label),
			slog.Bool("found", result.Found),
			slog.Int("explored", result.Explored),
			slog.Int("path_length", result.Length()),
			slog.Duration("duration", time.Since(start)),
		)
	}

	return result, err
}
