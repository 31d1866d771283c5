// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package render draws solved mazes and search reports as terminal text.
//
// Two modes are supported. Color mode marks the path in green and explored
// cells in red using lipgloss styles; plain mode uses distinct characters
// only, for logs, pipes and tests.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/AleutianAI/AleutianMaze/pkg/ux"
	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
)

// Mode selects how markers are drawn.
type Mode string

const (
	// ModeColor draws markers with ANSI colors.
	ModeColor Mode = "color"

	// ModePlain draws markers as distinct characters without escapes.
	ModePlain Mode = "plain"
)

// Cell markers.
const (
	MarkerStart    = "S"
	MarkerEnd      = "E"
	MarkerPath     = "P"
	MarkerExplored = "." // plain mode only; color mode keeps "-" in red
)

// Separator divides the maze, the path listing and the footer.
const Separator = "=========================="

// Options configures a Renderer.
type Options struct {
	// Mode is ModeColor or ModePlain.
	// Default: ModeColor
	Mode Mode

	// ShowExplored marks visited cells that are not on the path.
	// Default: true
	ShowExplored bool

	// Separators draws Separator lines between report sections. When
	// false sections are divided by a blank line only.
	// Default: true
	Separators bool
}

// Option is a functional option for configuring a Renderer.
type Option func(*Options)

// WithMode sets the render mode.
func WithMode(m Mode) Option {
	return func(o *Options) {
		o.Mode = m
	}
}

// WithShowExplored toggles explored-cell markers.
func WithShowExplored(show bool) Option {
	return func(o *Options) {
		o.ShowExplored = show
	}
}

// WithSeparators toggles the rule lines in Report.
func WithSeparators(show bool) Option {
	return func(o *Options) {
		o.Separators = show
	}
}

// DefaultOptions returns the default render options.
func DefaultOptions() Options {
	return Options{
		Mode:         ModeColor,
		ShowExplored: true,
		Separators:   true,
	}
}

// Renderer draws mazes and reports.
//
// Thread Safety: Renderer is immutable and safe for concurrent use.
type Renderer struct {
	options  Options
	path     lipgloss.Style
	explored lipgloss.Style
	muted    lipgloss.Style
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return &Renderer{
		options:  options,
		path:     lipgloss.NewStyle().Bold(true).Foreground(ux.ColorPath),
		explored: lipgloss.NewStyle().Bold(true).Foreground(ux.ColorExplored),
		muted:    lipgloss.NewStyle().Foreground(ux.ColorMuted),
	}
}

// Options returns the renderer's options.
func (r *Renderer) Options() Options { return r.options }

// Maze draws the grid with start, end, path and explored markers.
//
// Description:
//
//	Every cell is drawn with its file-format token, then overlaid: explored
//	nodes (if enabled), then path nodes as P, then S and E at the graph's
//	start and end. res may be nil or unsuccessful, in which case only S, E
//	and explored markers are drawn.
func (r *Renderer) Maze(g *graph.Graph, res *search.Result) string {
	gr := g.Grid()
	cells := make([]string, gr.Size())
	for row := 0; row < gr.Rows(); row++ {
		for col := 0; col < gr.Cols(); col++ {
			m, _ := gr.At(grid.Cell{Row: row, Col: col})
			cells[row*gr.Cols()+col] = m.String()
		}
	}
	set := func(c grid.Cell, s string) {
		cells[c.Row*gr.Cols()+c.Col] = s
	}

	if res != nil {
		if r.options.ShowExplored {
			for id, seen := range res.Visited {
				if seen {
					set(g.CellOf(graph.NodeID(id)), r.exploredMarker())
				}
			}
		}
		if res.Found {
			for _, c := range res.Cells {
				set(c, r.paint(r.path, MarkerPath))
			}
		}
	}
	set(g.CellOf(g.Start()), r.paint(r.path, MarkerStart))
	set(g.CellOf(g.End()), r.paint(r.path, MarkerEnd))

	var sb strings.Builder
	sb.Grow(len(cells) * 2)
	for row := 0; row < gr.Rows(); row++ {
		sb.WriteString(strings.Join(cells[row*gr.Cols():(row+1)*gr.Cols()], " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// PathListing formats a path as Node(r, c)->Node(r, c)->...
func PathListing(cells []grid.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("Node(%d, %d)", c.Row, c.Col)
	}
	return strings.Join(parts, "->")
}

// Stats is the footer of a report.
type Stats struct {
	Explored   int
	Duration   time.Duration
	PathLength int
}

// Footer formats the run statistics.
func Footer(s Stats) string {
	return fmt.Sprintf("Nodes explored: %d\nTime of execution: %f\nPath length: %d\n",
		s.Explored, s.Duration.Seconds(), s.PathLength)
}

// Report writes the maze, the path listing and the footer to w.
//
// When res has no path the listing is replaced by a notice that the end
// is unreachable.
func (r *Renderer) Report(w io.Writer, g *graph.Graph, res *search.Result, elapsed time.Duration) error {
	var sb strings.Builder
	sb.WriteString(r.Maze(g, res))
	r.writeBreak(&sb)

	stats := Stats{Duration: elapsed}
	if res != nil {
		stats.Explored = res.Explored
		stats.PathLength = res.Length()
	}
	if res != nil && res.Found {
		sb.WriteString(PathListing(res.Cells))
		sb.WriteByte('\n')
	} else {
		sb.WriteString("No path: the end cell is unreachable from the start cell\n")
	}

	r.writeBreak(&sb)
	sb.WriteString(Footer(stats))

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) writeBreak(sb *strings.Builder) {
	if !r.options.Separators {
		sb.WriteByte('\n')
		return
	}
	sb.WriteString("\n" + r.paint(r.muted, Separator) + "\n\n")
}

func (r *Renderer) exploredMarker() string {
	if r.options.Mode == ModePlain {
		return MarkerExplored
	}
	return r.explored.Render(grid.OpenToken)
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if r.options.Mode == ModePlain {
		return s
	}
	return style.Render(s)
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeColor, "":
		return ModeColor, nil
	case ModePlain:
		return ModePlain, nil
	default:
		return "", fmt.Errorf("unknown render mode %q (want color or plain)", s)
	}
}
