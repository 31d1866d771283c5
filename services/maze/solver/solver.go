// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
)

// DefaultConcurrency bounds SolveAll when no limit is configured.
const DefaultConcurrency = 4

// Options configures a Solver.
type Options struct {
	// Algorithm selects the search strategy.
	// Default: search.AlgorithmAStar
	Algorithm search.Algorithm

	// Heuristic is the A* estimate. Ignored by DFS.
	// Default: heuristic.DefaultKind
	Heuristic heuristic.Kind

	// MaxNodes caps graph size per maze. 0 disables the cap.
	MaxNodes int

	// Concurrency bounds the number of mazes SolveAll works on at once.
	// Default: DefaultConcurrency
	Concurrency int

	// Observer receives search steps. May be nil. Called from the solving
	// goroutine, so it must be safe for concurrent use under SolveAll.
	Observer search.Observer

	// OnOutcome is called by SolveAll after each maze finishes. May be nil.
	// Called concurrently from worker goroutines.
	OnOutcome func(*Outcome)

	// Logger receives per-maze log lines.
	// Default: slog.Default()
	Logger *slog.Logger
}

// Option is a functional option for configuring a Solver.
type Option func(*Options)

// WithAlgorithm sets the search strategy.
func WithAlgorithm(alg search.Algorithm) Option {
	return func(o *Options) { o.Algorithm = alg }
}

// WithHeuristic sets the A* heuristic.
func WithHeuristic(k heuristic.Kind) Option {
	return func(o *Options) { o.Heuristic = k }
}

// WithMaxNodes caps graph size per maze.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// WithConcurrency bounds SolveAll. Values <= 0 use DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(o *Options) { o.Concurrency = n }
}

// WithObserver sets the search step observer.
func WithObserver(fn search.Observer) Option {
	return func(o *Options) { o.Observer = fn }
}

// WithOnOutcome sets the per-maze completion callback for SolveAll.
func WithOnOutcome(fn func(*Outcome)) Option {
	return func(o *Options) { o.OnOutcome = fn }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Outcome is the result of solving one maze.
type Outcome struct {
	// Source is the file path, or a caller-chosen label for readers.
	Source string

	Grid   *grid.Grid
	Graph  *graph.Graph
	Result *search.Result

	// Elapsed covers graph construction and search.
	Elapsed time.Duration

	// Err is the solve error, a *StageError. Nil on success.
	Err error
}

// Solved reports whether a path was found.
func (o *Outcome) Solved() bool {
	return o.Err == nil && o.Result != nil && o.Result.Found
}

// Unreachable reports whether the maze was valid but had no path.
func (o *Outcome) Unreachable() bool {
	return errors.Is(o.Err, search.ErrUnreachable)
}

// Solver runs the maze pipeline.
//
// Thread Safety:
//
//	Safe for concurrent use. Every solve owns its grid, graph and state.
type Solver struct {
	options Options
	builder *graph.Builder
	logger  *slog.Logger
}

// New creates a Solver.
//
// Example:
//
//	s := solver.New(solver.WithAlgorithm(search.AlgorithmDFS))
//	out, err := s.SolveFile(ctx, "maze.txt")
func New(opts ...Option) *Solver {
	options := Options{
		Algorithm:   search.AlgorithmAStar,
		Heuristic:   heuristic.DefaultKind,
		Concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Concurrency <= 0 {
		options.Concurrency = DefaultConcurrency
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{
		options: options,
		builder: graph.NewBuilder(graph.WithMaxNodes(options.MaxNodes)),
		logger:  logger,
	}
}

// Options returns the solver's configuration.
func (s *Solver) Options() Options { return s.options }

// SolveFile loads, parses and solves the maze at path.
//
// Outputs:
//
//	*Outcome - Always non-nil. Grid, Graph and Result are set as far as
//	           the pipeline got.
//	error - Same as Outcome.Err. A *StageError; errors.Is against
//	        search.ErrUnreachable distinguishes the no-path case.
func (s *Solver) SolveFile(ctx context.Context, path string) (*Outcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return s.fail(&Outcome{Source: path}, StageLoad, err)
	}
	defer f.Close()
	return s.SolveReader(ctx, path, f)
}

// SolveReader parses maze text from r and solves it.
func (s *Solver) SolveReader(ctx context.Context, source string, r io.Reader) (*Outcome, error) {
	g, err := grid.Parse(r)
	if err != nil {
		return s.fail(&Outcome{Source: source}, StageParse, err)
	}
	return s.SolveGrid(ctx, source, g)
}

// SolveGrid builds the graph for g and searches it.
func (s *Solver) SolveGrid(ctx context.Context, source string, g *grid.Grid) (*Outcome, error) {
	out := &Outcome{Source: source, Grid: g}
	start := time.Now()

	gr, err := s.builder.Build(ctx, g)
	if err != nil {
		out.Elapsed = time.Since(start)
		return s.fail(out, StageBuild, err)
	}
	out.Graph = gr

	opts := []search.Option{search.WithHeuristic(s.options.Heuristic)}
	if s.options.Observer != nil {
		opts = append(opts, search.WithObserver(s.options.Observer))
	}
	res, err := search.Run(ctx, gr, s.options.Algorithm, opts...)
	out.Elapsed = time.Since(start)
	out.Result = res
	if err != nil {
		return s.fail(out, StageSearch, err)
	}

	s.logger.Info("maze solved",
		slog.String("maze", source),
		slog.String("algorithm", string(s.options.Algorithm)),
		slog.Int("nodes", gr.NodeCount()),
		slog.Int("explored", res.Explored),
		slog.Int("path_length", res.Length()),
		slog.Duration("elapsed", out.Elapsed),
	)
	return out, nil
}

func (s *Solver) fail(out *Outcome, stage Stage, err error) (*Outcome, error) {
	out.Err = &StageError{Stage: stage, Source: out.Source, Err: err}
	if errors.Is(err, search.ErrUnreachable) {
		s.logger.Info("maze has no path",
			slog.String("maze", out.Source),
			slog.Int("explored", out.Result.Explored),
		)
	} else {
		s.logger.Warn("maze solve failed",
			slog.String("maze", out.Source),
			slog.String("stage", string(stage)),
			slog.String("error", err.Error()),
		)
	}
	return out, out.Err
}

// Summary counts outcomes by kind.
type Summary struct {
	Solved      int
	Unreachable int
	Failed      int
}

// Total returns the number of outcomes counted.
func (s Summary) Total() int { return s.Solved + s.Unreachable + s.Failed }

// Summarize counts outcomes.
func Summarize(outcomes []*Outcome) Summary {
	var sum Summary
	for _, o := range outcomes {
		switch {
		case o == nil:
		case o.Solved():
			sum.Solved++
		case o.Unreachable():
			sum.Unreachable++
		default:
			sum.Failed++
		}
	}
	return sum
}

// SolveAll solves every file in paths with bounded concurrency.
//
// Description:
//
//	Per-maze failures are reported through Outcome.Err and do not stop the
//	batch. Outcomes are returned in the order of paths.
//
// Outputs:
//
//	[]*Outcome - One entry per path. Entries for mazes not started before
//	             cancellation are nil.
//	error - ErrNoInputs, or a wrapped ctx.Err() if the batch was cancelled.
func (s *Solver) SolveAll(ctx context.Context, paths []string) ([]*Outcome, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputs
	}

	ctx, span := otel.Tracer("aleutian.maze.solver").Start(ctx, "solver.SolveAll",
		trace.WithAttributes(
			attribute.Int("solver.mazes", len(paths)),
			attribute.Int("solver.concurrency", s.options.Concurrency),
		),
	)
	defer span.End()

	outcomes := make([]*Outcome, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Concurrency)

	for i, path := range paths {
		if gCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			// Per-maze errors live on the outcome.
			outcomes[i], _ = s.SolveFile(gCtx, path)
			if s.options.OnOutcome != nil {
				s.options.OnOutcome(outcomes[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch cancelled")
		return outcomes, fmt.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "batch cancelled")
		return outcomes, fmt.Errorf("batch cancelled: %w", err)
	}

	sum := Summarize(outcomes)
	span.SetAttributes(
		attribute.Int("solver.solved", sum.Solved),
		attribute.Int("solver.unreachable", sum.Unreachable),
		attribute.Int("solver.failed", sum.Failed),
	)
	s.logger.Info("maze batch finished",
		slog.Int("total", sum.Total()),
		slog.Int("solved", sum.Solved),
		slog.Int("unreachable", sum.Unreachable),
		slog.Int("failed", sum.Failed),
	)
	return outcomes, nil
}
