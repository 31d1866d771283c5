// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command maze solves grid mazes with A* or depth-first search.
//
//	maze solve maze.txt --algorithm astar --heuristic euclidean
//	maze batch mazes/*.txt --concurrency 8
//	maze serve --port 8090
package main

import (
	"errors"
	"os"

	"github.com/AleutianAI/AleutianMaze/pkg/ux"
)

func main() {
	err := rootCmd.Execute()
	teardown()
	os.Exit(exitCode(err))
}

// exitCode maps a command error to a process status and reports it.
//
// 0 success, 1 error, 2 valid maze without a path.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			ux.Error(ee.msg)
		}
		return ee.code
	}
	ux.Error(err.Error())
	return 1
}
