// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package grid

import (
	"fmt"
	"strings"
)

// Minimum grid dimensions.
const (
	MinRows = 2
	MinCols = 2
)

// Marker classifies a single grid cell.
type Marker uint8

const (
	// Wall blocks movement.
	Wall Marker = iota

	// Open allows movement.
	Open
)

// Textual markers used by the maze file format.
const (
	WallToken = "#"
	OpenToken = "-"
)

// String returns the file-format token for the marker.
func (m Marker) String() string {
	switch m {
	case Wall:
		return WallToken
	case Open:
		return OpenToken
	default:
		return fmt.Sprintf("Marker(%d)", uint8(m))
	}
}

// ParseMarker converts a file-format token into a Marker.
func ParseMarker(token string) (Marker, error) {
	switch token {
	case WallToken:
		return Wall, nil
	case OpenToken:
		return Open, nil
	default:
		return Wall, fmt.Errorf("%w: unknown cell marker %q", ErrMalformedGrid, token)
	}
}

// Cell is a grid position.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the cell the way path listings print it.
func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Up returns the cell one row above.
func (c Cell) Up() Cell { return Cell{Row: c.Row - 1, Col: c.Col} }

// Down returns the cell one row below.
func (c Cell) Down() Cell { return Cell{Row: c.Row + 1, Col: c.Col} }

// Left returns the cell one column to the left.
func (c Cell) Left() Cell { return Cell{Row: c.Row, Col: c.Col - 1} }

// Right returns the cell one column to the right.
func (c Cell) Right() Cell { return Cell{Row: c.Row, Col: c.Col + 1} }

// Grid is an immutable rectangular matrix of markers.
type Grid struct {
	rows  int
	cols  int
	cells []Marker
}

// New constructs a Grid from rows of markers.
//
// Description:
//
//	Copies the input so later mutation of the caller's slices does not
//	affect the grid. Rejects empty, ragged, and undersized input.
//
// Inputs:
//
//	rows - Row-major markers. Every row must have the same length.
//
// Outputs:
//
//	*Grid - The constructed grid.
//	error - Wraps ErrMalformedGrid if the input is not a valid grid.
func New(rows [][]Marker) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedGrid)
	}
	width := len(rows[0])
	if len(rows) < MinRows || width < MinCols {
		return nil, fmt.Errorf("%w: grid is %dx%d, need at least %dx%d",
			ErrMalformedGrid, len(rows), width, MinRows, MinCols)
	}

	g := &Grid{
		rows:  len(rows),
		cols:  width,
		cells: make([]Marker, 0, len(rows)*width),
	}
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d",
				ErrMalformedGrid, r, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// MustParseString parses a maze in file format and panics on error.
// Intended for tests and fixtures.
func MustParseString(s string) *Grid {
	g, err := Parse(strings.NewReader(s))
	if err != nil {
		panic(err)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the total number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

// At returns the marker at the cell.
func (g *Grid) At(c Cell) (Marker, error) {
	if !g.InBounds(c) {
		return Wall, fmt.Errorf("%w: %s in %dx%d grid", ErrOutOfBounds, c, g.rows, g.cols)
	}
	return g.cells[c.Row*g.cols+c.Col], nil
}

// IsOpen reports whether the cell is in bounds and open.
func (g *Grid) IsOpen(c Cell) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.cells[c.Row*g.cols+c.Col] == Open
}

// OpenCount returns the number of open cells in the grid.
func (g *Grid) OpenCount() int {
	n := 0
	for _, m := range g.cells {
		if m == Open {
			n++
		}
	}
	return n
}

// Row returns a copy of the markers in row r.
func (g *Grid) Row(r int) []Marker {
	if r < 0 || r >= g.rows {
		return nil
	}
	out := make([]Marker, g.cols)
	copy(out, g.cells[r*g.cols:(r+1)*g.cols])
	return out
}
