// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"errors"
	"fmt"

	"github.com/AleutianAI/AleutianMaze/services/maze/search"
	"github.com/AleutianAI/AleutianMaze/services/maze/solver"
)

// Exit statuses.
const (
	exitFailure     = 1
	exitUnreachable = 2
)

// msgInvalidMaze is shown when a maze file cannot be read or parsed.
const msgInvalidMaze = "The maze file entered was not valid"

// exitError carries a process exit status and an optional user message
// through cobra's RunE.
type exitError struct {
	code int
	msg  string
	err  error
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

// solveExitError turns a solve error into an exitError.
//
// Unreachable mazes exit 2 without a message; the report already says so.
func solveExitError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, search.ErrUnreachable) {
		return &exitError{code: exitUnreachable, err: err}
	}
	switch solver.StageOf(err) {
	case solver.StageLoad, solver.StageParse, solver.StageBuild:
		return &exitError{code: exitFailure, msg: msgInvalidMaze + ": " + err.Error(), err: err}
	default:
		return &exitError{code: exitFailure, msg: err.Error(), err: err}
	}
}
