// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package grid provides the rectangular cell grid that mazes are loaded into.
//
// A Grid is a row-major matrix of markers where each cell is either Open
// (traversable) or Wall (blocked). Grids are immutable once constructed and
// are always rectangular with at least two rows and two columns.
//
// # Maze File Format
//
// Maze files are plain text. Only lines whose first character is '#' are
// treated as maze rows; every other line (blank lines, comments) is skipped.
// Cells within a row are separated by single spaces:
//
//	# # - # #
//	# - - - #
//	# - # - #
//	# # # - #
//
// '#' marks a wall and '-' marks an open cell.
//
// # Thread Safety
//
// Grid is read-only after construction and safe for concurrent reads.
package grid

import "errors"

// Sentinel errors for grid construction and parsing.
var (
	// ErrMalformedGrid is returned when input cannot form a valid grid:
	// empty input, ragged rows, fewer than 2x2 cells, or unknown markers.
	// Graph construction failures caused by missing start/end cells also
	// wrap this error.
	ErrMalformedGrid = errors.New("malformed grid")

	// ErrOutOfBounds is returned when a cell outside the grid is queried.
	ErrOutOfBounds = errors.New("cell out of bounds")
)
