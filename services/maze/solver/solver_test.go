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
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
)

const (
	solvableMaze = `# - # #
# - - #
# # - #
# # - #
`
	enclosedMaze = `# - # # #
# - - # #
# # # # #
# # # - #
`
	noEndMaze = `# - # #
# - - #
# # # #
`
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeMaze(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSolveFile_Success(t *testing.T) {
	path := writeMaze(t, t.TempDir(), "maze.txt", solvableMaze)
	s := New(WithLogger(quietLogger()))

	out, err := s.SolveFile(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, out.Solved())
	assert.False(t, out.Unreachable())
	assert.Equal(t, path, out.Source)
	assert.Equal(t, 5, out.Graph.NodeCount())
	assert.Equal(t, []grid.Cell{
		{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 3, Col: 2},
	}, out.Result.Cells)
	assert.Positive(t, out.Elapsed)
}

func TestSolve_Stages(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name      string
		path      string
		wantStage Stage
		wantIs    error
	}{
		{"missing file", filepath.Join(dir, "missing.txt"), StageLoad, os.ErrNotExist},
		{"bad token", writeMaze(t, dir, "bad.txt", "# - #\n# x #\n"), StageParse, grid.ErrMalformedGrid},
		{"no end", writeMaze(t, dir, "noend.txt", noEndMaze), StageBuild, graph.ErrNoEnd},
		{"unreachable", writeMaze(t, dir, "enclosed.txt", enclosedMaze), StageSearch, search.ErrUnreachable},
	}

	s := New(WithLogger(quietLogger()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := s.SolveFile(context.Background(), tt.path)
			require.Error(t, err)
			require.NotNil(t, out)
			assert.Equal(t, tt.wantStage, StageOf(err))
			assert.ErrorIs(t, err, tt.wantIs)

			var se *StageError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.path, se.Source)
			assert.Contains(t, se.Error(), string(tt.wantStage))
		})
	}
}

func TestSolve_UnreachableKeepsResult(t *testing.T) {
	s := New(WithLogger(quietLogger()))
	out, err := s.SolveReader(context.Background(), "enclosed", strings.NewReader(enclosedMaze))
	require.ErrorIs(t, err, search.ErrUnreachable)
	assert.True(t, out.Unreachable())
	require.NotNil(t, out.Result)
	assert.False(t, out.Result.Found)
	assert.Equal(t, 3, out.Result.Explored)
}

func TestSolver_Options(t *testing.T) {
	var steps atomic.Int32
	s := New(
		WithAlgorithm(search.AlgorithmDFS),
		WithHeuristic(heuristic.KindEuclidean),
		WithConcurrency(0),
		WithObserver(func(search.Step) { steps.Add(1) }),
		WithLogger(quietLogger()),
	)
	assert.Equal(t, search.AlgorithmDFS, s.Options().Algorithm)
	assert.Equal(t, DefaultConcurrency, s.Options().Concurrency)

	out, err := s.SolveGrid(context.Background(), "sample", grid.MustParseString(solvableMaze))
	require.NoError(t, err)
	assert.Equal(t, search.AlgorithmDFS, out.Result.Algorithm)
	assert.EqualValues(t, out.Result.Explored, steps.Load())
}

func TestSolver_MaxNodes(t *testing.T) {
	s := New(WithMaxNodes(2), WithLogger(quietLogger()))
	_, err := s.SolveGrid(context.Background(), "sample", grid.MustParseString(solvableMaze))
	assert.ErrorIs(t, err, graph.ErrMaxNodesExceeded)
	assert.Equal(t, StageBuild, StageOf(err))
}

func TestSolveAll(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeMaze(t, dir, "a.txt", solvableMaze),
		writeMaze(t, dir, "b.txt", enclosedMaze),
		filepath.Join(dir, "missing.txt"),
		writeMaze(t, dir, "c.txt", solvableMaze),
	}

	var finished atomic.Int32
	s := New(
		WithConcurrency(2),
		WithLogger(quietLogger()),
		WithOnOutcome(func(*Outcome) { finished.Add(1) }),
	)
	outcomes, err := s.SolveAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, outcomes, len(paths))
	assert.EqualValues(t, len(paths), finished.Load())

	for i, o := range outcomes {
		require.NotNil(t, o)
		assert.Equal(t, paths[i], o.Source, "outcomes keep input order")
	}
	assert.True(t, outcomes[0].Solved())
	assert.True(t, outcomes[1].Unreachable())
	assert.Equal(t, StageLoad, StageOf(outcomes[2].Err))

	sum := Summarize(outcomes)
	assert.Equal(t, Summary{Solved: 2, Unreachable: 1, Failed: 1}, sum)
	assert.Equal(t, 4, sum.Total())
}

func TestSolveAll_NoInputs(t *testing.T) {
	_, err := New().SolveAll(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoInputs)
}

func TestSolveAll_Cancelled(t *testing.T) {
	path := writeMaze(t, t.TempDir(), "a.txt", solvableMaze)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(WithLogger(quietLogger())).SolveAll(ctx, []string{path, path})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStageOf_PlainError(t *testing.T) {
	assert.Equal(t, Stage(""), StageOf(errors.New("plain")))
	assert.Equal(t, "search: boom", (&StageError{Stage: StageSearch, Err: errors.New("boom")}).Error())
}
