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
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// rowPrefix marks a line as a maze row. Every row of a well-formed maze
	// starts with a wall token, so other lines are skipped.
	rowPrefix = "#"

	// maxLineBytes bounds a single maze row. Very large mazes have rows with
	// tens of thousands of cells.
	maxLineBytes = 4 * 1024 * 1024
)

// Parse reads a maze in file format.
//
// Description:
//
//	Reads every line, keeps only those starting with '#', strips trailing
//	newline, carriage return and spaces, and splits the remainder on single
//	spaces. Each token must be '#' or '-'.
//
// Inputs:
//
//	r - Source of maze text.
//
// Outputs:
//
//	*Grid - The parsed grid.
//	error - Wraps ErrMalformedGrid for content problems; I/O errors are
//	        returned wrapped as-is.
func Parse(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows [][]Marker
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, rowPrefix) {
			continue
		}
		line = strings.TrimRight(line, "\r\n ")

		tokens := strings.Split(line, " ")
		row := make([]Marker, len(tokens))
		for i, tok := range tokens {
			m, err := ParseMarker(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %w", lineNo, i, err)
			}
			row[i] = m
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read maze: %w", err)
	}

	return New(rows)
}

// ParseFile opens and parses a maze file.
func ParseFile(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open maze file: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

// Format writes the grid back in file format, one row per line.
func Format(g *Grid) string {
	var sb strings.Builder
	sb.Grow(g.Size() * 2)
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(g.cells[r*g.cols+c].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
