// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/AleutianMaze/services/maze/graph"
	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
	"github.com/AleutianAI/AleutianMaze/services/maze/render"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
	"github.com/AleutianAI/AleutianMaze/services/maze/solver"
)

// RequestIDHeader carries the request ID in and out.
const RequestIDHeader = "X-Request-ID"

// Config configures the handlers.
type Config struct {
	// Algorithm is used when a request names none.
	Algorithm search.Algorithm

	// Heuristic is used when a request names none.
	Heuristic heuristic.Kind

	// MaxMazeBytes caps the request body.
	MaxMazeBytes int64

	// MaxNodes caps graph size per request. 0 disables the cap.
	MaxNodes int

	// Version is reported by the health endpoint.
	Version string

	// Logger receives per-request log lines.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig returns the handler defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm:    search.AlgorithmAStar,
		Heuristic:    heuristic.DefaultKind,
		MaxMazeBytes: 8 << 20,
		Version:      "dev",
	}
}

// Handlers serves the maze endpoints.
type Handlers struct {
	config   Config
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewHandlers creates handlers with the given configuration.
func NewHandlers(cfg Config) *Handlers {
	if cfg.Algorithm == "" {
		cfg.Algorithm = search.AlgorithmAStar
	}
	if cfg.Heuristic == "" {
		cfg.Heuristic = heuristic.DefaultKind
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		config:   cfg,
		renderer: render.New(render.WithMode(render.ModePlain)),
		logger:   logger,
	}
}

// RegisterRoutes registers the maze routes with the router.
//
// Endpoints:
//
//	POST /v1/maze/solve - Solve a maze
//	GET  /v1/maze/health - Health check
//
// Example:
//
//	v1 := router.Group("/v1")
//	api.RegisterRoutes(v1, api.NewHandlers(api.DefaultConfig()))
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	maze := rg.Group("/maze")
	{
		maze.POST("/solve", handlers.HandleSolve)
		maze.GET("/health", handlers.HandleHealth)
	}
}

// HandleSolve solves the maze in the request body.
func (h *Handlers) HandleSolve(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := h.logger.With("request_id", requestID, "handler", "HandleSolve")

	if h.config.MaxMazeBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.config.MaxMazeBytes)
	}

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Maze too large", "limit", tooLarge.Limit)
			writeError(c, http.StatusRequestEntityTooLarge, CodeMazeTooLarge, "Maze exceeds the size limit", requestID)
			return
		}
		logger.Warn("Invalid request body", "error", err)
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, "Invalid request body", requestID)
		return
	}

	alg, kind, err := h.searchSettings(req)
	if err != nil {
		logger.Warn("Invalid search settings", "error", err)
		writeError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error(), requestID)
		return
	}

	s := solver.New(
		solver.WithAlgorithm(alg),
		solver.WithHeuristic(kind),
		solver.WithMaxNodes(h.config.MaxNodes),
		solver.WithLogger(logger),
	)
	out, err := s.SolveReader(c.Request.Context(), "request:"+requestID, strings.NewReader(req.Maze))
	if err != nil && !out.Unreachable() {
		status, code := classify(err)
		logger.Warn("Solve failed", "stage", solver.StageOf(err), "error", err)
		writeError(c, status, code, err.Error(), requestID)
		return
	}

	resp := SolveResponse{
		RequestID:  requestID,
		Algorithm:  string(alg),
		Found:      out.Result.Found,
		Path:       make([]CellJSON, 0, len(out.Result.Cells)),
		PathLength: out.Result.Length(),
		Explored:   out.Result.Explored,
		Nodes:      out.Graph.NodeCount(),
		DurationMs: float64(out.Elapsed.Microseconds()) / 1000,
	}
	if alg == search.AlgorithmAStar {
		resp.Heuristic = string(kind)
	}
	for _, cell := range out.Result.Cells {
		resp.Path = append(resp.Path, CellJSON{Row: cell.Row, Col: cell.Col})
	}
	if req.Render {
		resp.Rendered = h.renderer.Maze(out.Graph, out.Result)
	}

	c.Header(RequestIDHeader, requestID)
	c.JSON(http.StatusOK, resp)
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Version: h.config.Version})
}

// searchSettings resolves the request's algorithm and heuristic with the
// same parsers the CLI uses, falling back to the configured defaults.
func (h *Handlers) searchSettings(req SolveRequest) (search.Algorithm, heuristic.Kind, error) {
	alg := h.config.Algorithm
	if strings.TrimSpace(req.Algorithm) != "" {
		parsed, err := search.ParseAlgorithm(req.Algorithm)
		if err != nil {
			return "", "", err
		}
		alg = parsed
	}
	kind := h.config.Heuristic
	if strings.TrimSpace(req.Heuristic) != "" {
		parsed, err := heuristic.Parse(req.Heuristic)
		if err != nil {
			return "", "", err
		}
		kind = parsed
	}
	return alg, kind, nil
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, grid.ErrMalformedGrid):
		return http.StatusBadRequest, CodeInvalidMaze
	case errors.Is(err, graph.ErrMaxNodesExceeded):
		return http.StatusRequestEntityTooLarge, CodeTooManyNodes
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, graph.ErrBuildCancelled):
		return http.StatusServiceUnavailable, CodeCancelled
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func writeError(c *gin.Context, status int, code, msg, requestID string) {
	c.Header(RequestIDHeader, requestID)
	c.JSON(status, ErrorResponse{Error: msg, Code: code, RequestID: requestID})
}

// getOrCreateRequestID returns the incoming X-Request-ID or a new UUID.
func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader(RequestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}
