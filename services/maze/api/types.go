// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api exposes the maze solver over HTTP with gin.
package api

// SolveRequest is the body of POST /v1/maze/solve.
type SolveRequest struct {
	// Maze is the maze in file format: '#'-prefixed rows of '#' and '-'.
	Maze string `json:"maze" binding:"required"`

	// Algorithm is "astar" or "dfs", matched case-insensitively.
	// Empty uses the server default.
	Algorithm string `json:"algorithm,omitempty"`

	// Heuristic is "manhattan" or "euclidean", matched case-insensitively.
	// Empty uses the server default.
	Heuristic string `json:"heuristic,omitempty"`

	// Render asks for the solved maze as plain text in the response.
	Render bool `json:"render,omitempty"`
}

// CellJSON is a grid coordinate.
type CellJSON struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SolveResponse is the body of a successful solve.
//
// An unreachable end is still a 200: Found is false and Path is empty.
type SolveResponse struct {
	RequestID  string     `json:"request_id"`
	Algorithm  string     `json:"algorithm"`
	Heuristic  string     `json:"heuristic,omitempty"`
	Found      bool       `json:"found"`
	Path       []CellJSON `json:"path"`
	PathLength int        `json:"path_length"`
	Explored   int        `json:"explored"`
	Nodes      int        `json:"nodes"`
	DurationMs float64    `json:"duration_ms"`
	Rendered   string     `json:"rendered,omitempty"`
}

// HealthResponse is the body of GET /v1/maze/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the error message.
	Error string `json:"error"`

	// Code is a stable machine-readable error code.
	Code string `json:"code,omitempty"`

	// RequestID echoes the request's ID.
	RequestID string `json:"request_id,omitempty"`
}

// Error codes.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeMazeTooLarge   = "MAZE_TOO_LARGE"
	CodeInvalidMaze    = "INVALID_MAZE"
	CodeTooManyNodes   = "TOO_MANY_NODES"
	CodeCancelled      = "SEARCH_CANCELLED"
	CodeInternal       = "INTERNAL_ERROR"
)
