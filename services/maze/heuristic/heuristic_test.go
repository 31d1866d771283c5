// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package heuristic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
)

func TestManhattan(t *testing.T) {
	tests := []struct {
		a, b grid.Cell
		want float64
	}{
		{grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 0, Col: 0}, 0},
		{grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 3, Col: 4}, 7},
		{grid.Cell{Row: 5, Col: 1}, grid.Cell{Row: 2, Col: 6}, 8},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Manhattan(tt.a, tt.b))
		assert.Equal(t, tt.want, Manhattan(tt.b, tt.a), "symmetric")
	}
}

func TestEuclidean(t *testing.T) {
	assert.Equal(t, 5.0, Euclidean(grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 3, Col: 4}))
	assert.InDelta(t, math.Sqrt2, Euclidean(grid.Cell{Row: 1, Col: 1}, grid.Cell{Row: 2, Col: 2}), 1e-12)
	assert.Equal(t, 0.0, Euclidean(grid.Cell{Row: 7, Col: 7}, grid.Cell{Row: 7, Col: 7}))
}

func TestEuclidean_NeverExceedsManhattan(t *testing.T) {
	for r := -4; r <= 4; r++ {
		for c := -4; c <= 4; c++ {
			a := grid.Cell{Row: 0, Col: 0}
			b := grid.Cell{Row: r, Col: c}
			assert.LessOrEqual(t, Euclidean(a, b), Manhattan(a, b))
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"manhattan", KindManhattan},
		{"Manhattan", KindManhattan},
		{"  EUCLIDEAN\n", KindEuclidean},
		{"euclidean", KindEuclidean},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			k, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k)
		})
	}

	for _, bad := range []string{"", "chebyshev", "man hattan"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := Parse(bad)
			assert.ErrorIs(t, err, ErrInvalidSelector)
		})
	}
}

func TestKind_Func(t *testing.T) {
	a, b := grid.Cell{Row: 0, Col: 0}, grid.Cell{Row: 3, Col: 4}
	assert.Equal(t, 7.0, KindManhattan.Func()(a, b))
	assert.Equal(t, 5.0, KindEuclidean.Func()(a, b))
	assert.Nil(t, Kind("bogus").Func())
	assert.False(t, Kind("bogus").Valid())
	assert.Len(t, Kinds(), 2)
}
