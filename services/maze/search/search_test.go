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
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

const (
	sampleMaze = `# - # #
# - - #
# # - #
# # - #
`

	// 3x3 open region with a blocked centre, openings above and below the
	// middle column.
	blockedCentreMaze = `# # - # #
# - - - #
# - # - #
# - - - #
# # - # #
`

	adjacentMaze = `# - # #
# - # #
`

	enclosedEndMaze = `# - # # #
# - - # #
# - # - #
# # # - #
`

	loopMaze = `# - # # # # # # #
# - - - - - - - #
# - # # # - # - #
# - # - - - # - #
# - # - # # # - #
# - - - # - - - #
# # # - # - # # #
# - - - - - - - #
# # # # # # # - #
`
)

var heuristics = []heuristic.Kind{heuristic.KindManhattan, heuristic.KindEuclidean}

func buildGraph(t *testing.T, maze string) *graph.Graph {
	t.Helper()
	g, err := graph.Build(context.Background(), grid.MustParseString(maze))
	require.NoError(t, err)
	return g
}

// bfsDistances returns hop counts from start, -1 for unreachable nodes.
func bfsDistances(g *graph.Graph) []int {
	dist := make([]int, g.NodeCount())
	for i := range dist {
		dist[i] = -1
	}
	dist[g.Start()] = 0
	queue := []graph.NodeID{g.Start()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range g.Neighbors(cur) {
			if dist[nb] < 0 {
				dist[nb] = dist[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return dist
}

func reachableCount(dist []int) int {
	n := 0
	for _, d := range dist {
		if d >= 0 {
			n++
		}
	}
	return n
}

func countTrue(v []bool) int {
	n := 0
	for _, b := range v {
		if b {
			n++
		}
	}
	return n
}

// randomMaze returns a walled grid with one opening in the top and bottom rows.
func randomMaze(t *testing.T, seed int64, rows, cols int, wallProb float64) *grid.Grid {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	m := make([][]grid.Marker, rows)
	for r := range m {
		m[r] = make([]grid.Marker, cols)
		if r == 0 || r == rows-1 {
			continue
		}
		for c := 1; c < cols-1; c++ {
			if rng.Float64() >= wallProb {
				m[r][c] = grid.Open
			}
		}
	}
	m[0][1+rng.Intn(cols-2)] = grid.Open
	m[rows-1][1+rng.Intn(cols-2)] = grid.Open

	g, err := grid.New(m)
	require.NoError(t, err)
	return g
}

func assertValidPath(t *testing.T, g *graph.Graph, res *Result) {
	t.Helper()
	require.True(t, res.Found)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, g.Start(), res.Path[0])
	assert.Equal(t, g.End(), res.Path[len(res.Path)-1])
	assert.Equal(t, len(res.Path)-1, res.Cost)
	assert.Equal(t, g.Cells(res.Path), res.Cells)

	seen := make(map[graph.NodeID]bool, len(res.Path))
	for i, id := range res.Path {
		assert.False(t, seen[id], "node %d repeated on path", id)
		seen[id] = true
		assert.True(t, res.Visited[id], "path node %d not visited", id)
		if i > 0 {
			assert.True(t, g.Adjacent(res.Path[i-1], id), "path step %d-%d not adjacent", res.Path[i-1], id)
		}
	}

	assert.LessOrEqual(t, res.Explored, g.NodeCount())
	assert.Equal(t, res.Explored, countTrue(res.Visited))
}

func TestAStar_SampleMaze(t *testing.T) {
	g := buildGraph(t, sampleMaze)

	for _, k := range heuristics {
		t.Run(k.String(), func(t *testing.T) {
			res, err := AStar(context.Background(), g, WithHeuristic(k))
			require.NoError(t, err)
			assertValidPath(t, g, res)

			assert.Equal(t, []grid.Cell{
				{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 2, Col: 2}, {Row: 3, Col: 2},
			}, res.Cells)
			assert.Equal(t, AlgorithmAStar, res.Algorithm)
			assert.Equal(t, k, res.Heuristic)
		})
	}
}

func TestAStar_BlockedCentre(t *testing.T) {
	g := buildGraph(t, blockedCentreMaze)

	for _, k := range heuristics {
		t.Run(k.String(), func(t *testing.T) {
			res, err := AStar(context.Background(), g, WithHeuristic(k))
			require.NoError(t, err)
			assertValidPath(t, g, res)

			assert.Equal(t, 7, res.Length())
			// The detour through the open region visits 5 nodes.
			assert.Len(t, res.Path[1:len(res.Path)-1], 5)

			centre := grid.Cell{Row: 2, Col: 2}
			assert.NotContains(t, res.Cells, centre)
		})
	}
}

func TestSearch_LiteralThreeByThreeIsUnreachable(t *testing.T) {
	m := [][]grid.Marker{
		{grid.Open, grid.Open, grid.Open},
		{grid.Open, grid.Wall, grid.Open},
		{grid.Open, grid.Open, grid.Open},
	}
	gr, err := grid.New(m)
	require.NoError(t, err)
	g, err := graph.Build(context.Background(), gr)
	require.NoError(t, err)

	for _, alg := range Algorithms() {
		res, err := Run(context.Background(), g, alg)
		assert.ErrorIs(t, err, ErrUnreachable)
		require.NotNil(t, res)
		assert.Equal(t, 1, res.Explored)
	}
}

func TestSearch_AdjacentStartAndEnd(t *testing.T) {
	g := buildGraph(t, adjacentMaze)

	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := Run(context.Background(), g, alg)
			require.NoError(t, err)
			assertValidPath(t, g, res)
			assert.Equal(t, 2, res.Length())
			assert.Equal(t, 2, res.Explored)
		})
	}
}

func TestSearch_EnclosedEnd(t *testing.T) {
	g := buildGraph(t, enclosedEndMaze)
	want := reachableCount(bfsDistances(g))
	require.Equal(t, 4, want)
	require.Equal(t, 6, g.NodeCount())

	for _, alg := range Algorithms() {
		for _, k := range heuristics {
			t.Run(alg.String()+"/"+k.String(), func(t *testing.T) {
				res, err := Run(context.Background(), g, alg, WithHeuristic(k))
				require.ErrorIs(t, err, ErrUnreachable)
				require.NotNil(t, res)

				assert.False(t, res.Found)
				assert.Nil(t, res.Path)
				assert.Equal(t, want, res.Explored)
				assert.False(t, res.Visited[g.End()])
			})
		}
	}
}

func TestAStar_OptimalVersusBFS(t *testing.T) {
	mazes := map[string]*graph.Graph{
		"sample":  buildGraph(t, sampleMaze),
		"centre":  buildGraph(t, blockedCentreMaze),
		"loop":    buildGraph(t, loopMaze),
		"enclose": buildGraph(t, enclosedEndMaze),
	}
	for seed := int64(1); seed <= 40; seed++ {
		g, err := graph.Build(context.Background(), randomMaze(t, seed, 21, 17, 0.3))
		require.NoError(t, err)
		mazes[fmt.Sprintf("random%d", seed)] = g
	}

	for name, g := range mazes {
		dist := bfsDistances(g)
		goalDist := dist[g.End()]

		dfs, dfsErr := DFS(context.Background(), g)

		for _, k := range heuristics {
			res, err := AStar(context.Background(), g, WithHeuristic(k))
			if goalDist < 0 {
				assert.ErrorIs(t, err, ErrUnreachable, name)
				assert.ErrorIs(t, dfsErr, ErrUnreachable, name)
				assert.Equal(t, reachableCount(dist), res.Explored, name)
				assert.Equal(t, reachableCount(dist), dfs.Explored, name)
				continue
			}

			require.NoError(t, err, name)
			require.NoError(t, dfsErr, name)
			assertValidPath(t, g, res)
			assertValidPath(t, g, dfs)

			assert.Equal(t, goalDist, res.Cost, "%s/%s not optimal", name, k)
			assert.LessOrEqual(t, res.Length(), dfs.Length(), name)
		}
	}
}

func TestAStar_ObserverMonotone(t *testing.T) {
	g := buildGraph(t, loopMaze)

	for _, k := range heuristics {
		t.Run(k.String(), func(t *testing.T) {
			var steps []Step
			res, err := AStar(context.Background(), g, WithHeuristic(k), WithObserver(func(s Step) {
				steps = append(steps, s)
			}))
			require.NoError(t, err)
			require.Len(t, steps, res.Explored)

			for i, s := range steps {
				assert.Equal(t, i, s.Index)
				assert.Equal(t, i+1, s.Explored)
				assert.Equal(t, g.CellOf(s.Node), s.Cell)
				if i > 0 {
					assert.GreaterOrEqual(t, s.F, steps[i-1].F-1e-9, "f must not decrease with a consistent heuristic")
				}
			}
			assert.Equal(t, g.Start(), steps[0].Node)
			assert.Equal(t, g.End(), steps[len(steps)-1].Node)
			assert.Equal(t, res.Cost, steps[len(steps)-1].G)
		})
	}
}

func TestDFS_Observer(t *testing.T) {
	g := buildGraph(t, loopMaze)

	var steps []Step
	res, err := DFS(context.Background(), g, WithObserver(func(s Step) {
		steps = append(steps, s)
	}))
	require.NoError(t, err)
	require.Len(t, steps, res.Explored)
	for i, s := range steps {
		assert.Equal(t, i+1, s.Explored)
		assert.Zero(t, s.F)
	}
	assert.Equal(t, res.Length(), steps[len(steps)-1].Frontier)
}

func TestDFS_SampleMaze(t *testing.T) {
	g := buildGraph(t, sampleMaze)

	res, err := DFS(context.Background(), g)
	require.NoError(t, err)
	assertValidPath(t, g, res)
	assert.Equal(t, []graph.NodeID{0, 1, 2, 3, 4}, res.Path)
	assert.Equal(t, 5, res.Explored)
	assert.Equal(t, AlgorithmDFS, res.Algorithm)
	assert.Empty(t, res.Heuristic)
}

func TestDFS_ProbesInInsertionOrder(t *testing.T) {
	// Down is probed before left and right. The down branch from (1, 3)
	// dead-ends, then the left branch dead-ends, then right reaches the end.
	maze := `# # # - # # #
# - - - - - #
# - # - # - #
# - # # # - #
# # # # # - #
`
	g := buildGraph(t, maze)

	var order []grid.Cell
	res, err := DFS(context.Background(), g, WithObserver(func(s Step) {
		order = append(order, s.Cell)
	}))
	require.NoError(t, err)
	assertValidPath(t, g, res)

	assert.Equal(t, []grid.Cell{
		{Row: 0, Col: 3},
		{Row: 1, Col: 3},
		{Row: 2, Col: 3},
		{Row: 1, Col: 2},
		{Row: 1, Col: 1},
		{Row: 2, Col: 1},
		{Row: 3, Col: 1},
		{Row: 1, Col: 4},
		{Row: 1, Col: 5},
		{Row: 2, Col: 5},
		{Row: 3, Col: 5},
		{Row: 4, Col: 5},
	}, order)
	assert.Equal(t, 12, res.Explored)

	assert.Equal(t, []grid.Cell{
		{Row: 0, Col: 3},
		{Row: 1, Col: 3},
		{Row: 1, Col: 4},
		{Row: 1, Col: 5},
		{Row: 2, Col: 5},
		{Row: 3, Col: 5},
		{Row: 4, Col: 5},
	}, res.Cells)
}

func TestSearch_Deterministic(t *testing.T) {
	for _, alg := range Algorithms() {
		for _, k := range heuristics {
			first, err := Run(context.Background(), buildGraph(t, loopMaze), alg, WithHeuristic(k))
			require.NoError(t, err)
			for i := 0; i < 3; i++ {
				again, err := Run(context.Background(), buildGraph(t, loopMaze), alg, WithHeuristic(k))
				require.NoError(t, err)
				assert.Equal(t, first.Path, again.Path)
				assert.Equal(t, first.Explored, again.Explored)
			}
		}
	}
}

func TestSearch_GraphReuse(t *testing.T) {
	g := buildGraph(t, loopMaze)

	a, err := AStar(context.Background(), g)
	require.NoError(t, err)
	b, err := AStar(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, a.Path, b.Path)
	assert.Equal(t, a.Explored, b.Explored)
}

func TestSearch_Cancelled(t *testing.T) {
	g := buildGraph(t, loopMaze)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, alg := range Algorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			res, err := Run(ctx, g, alg, WithContextCheckInterval(1))
			require.Error(t, err)
			assert.ErrorIs(t, err, context.Canceled)
			assert.NotErrorIs(t, err, ErrUnreachable)
			require.NotNil(t, res)
			assert.False(t, res.Found)
		})
	}
}

func TestSearch_InvalidInput(t *testing.T) {
	g := buildGraph(t, sampleMaze)

	_, err := Run(context.Background(), g, Algorithm("bfs"))
	assert.ErrorIs(t, err, ErrInvalidAlgorithm)

	_, err = AStar(context.Background(), g, WithHeuristic("chebyshev"))
	assert.ErrorIs(t, err, heuristic.ErrInvalidSelector)

	_, err = AStar(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilGraph)

	_, err = DFS(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilGraph)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input string
		want  Algorithm
	}{
		{"astar", AlgorithmAStar},
		{"A*", AlgorithmAStar},
		{" a-star ", AlgorithmAStar},
		{"DFS", AlgorithmDFS},
	}
	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseAlgorithm("dijkstra")
	assert.ErrorIs(t, err, ErrInvalidAlgorithm)
}

func TestClassifySearchError(t *testing.T) {
	g := buildGraph(t, sampleMaze)
	_, badHeuristic := Run(context.Background(), g, AlgorithmAStar, WithHeuristic("chebyshev"))
	require.Error(t, badHeuristic)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "success"},
		{"unreachable", ErrUnreachable, "unreachable"},
		{"deadline", context.DeadlineExceeded, "canceled"},
		{"cycle", ErrReconstructionCycle, "reconstruction_cycle"},
		{"algorithm", ErrInvalidAlgorithm, "invalid_input"},
		{"nil graph", ErrNilGraph, "invalid_input"},
		{"heuristic selector", heuristic.ErrInvalidSelector, "invalid_input"},
		{"heuristic from run", badHeuristic, "invalid_input"},
		{"unknown", assert.AnError, "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifySearchError(tt.err))
		})
	}
}

func TestOptions_Defaults(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, heuristic.DefaultKind, o.Heuristic)
	assert.Equal(t, DefaultContextCheckInterval, o.ContextCheckInterval)

	o = applyOptions([]Option{WithContextCheckInterval(-5)})
	assert.Equal(t, DefaultContextCheckInterval, o.ContextCheckInterval)
}
