// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package solver runs the maze pipeline: load, parse, build, search.
//
// A Solver is configured once and reused for any number of mazes. Each
// solve builds its own grid, graph and search state, so a Solver is safe
// for concurrent use and SolveAll fans out across files.
package solver

import (
	"errors"
	"fmt"
)

// Stage names a pipeline step.
type Stage string

const (
	StageLoad   Stage = "load"
	StageParse  Stage = "parse"
	StageBuild  Stage = "build"
	StageSearch Stage = "search"
)

// ErrNoInputs is returned by SolveAll when no paths are given.
var ErrNoInputs = errors.New("no maze files given")

// StageError records which stage of a solve failed.
//
// Use errors.Is against the grid, graph and search sentinels; StageError
// unwraps to the underlying error.
type StageError struct {
	Stage  Stage
	Source string
	Err    error
}

func (e *StageError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Source, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the failing stage of err, or "" if err has none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
