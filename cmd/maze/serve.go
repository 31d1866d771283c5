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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/AleutianAI/AleutianMaze/services/maze/api"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
	"github.com/AleutianAI/AleutianMaze/services/maze/telemetry"
)

var (
	portFlag  int
	debugFlag bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze solver over HTTP",
		Long: `Serve starts an HTTP server with:

  POST /v1/maze/solve   solve a maze sent as JSON
  GET  /v1/maze/health  health check
  GET  /metrics         Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 0, "port to listen on (default from config)")
	serveCmd.Flags().BoolVar(&debugFlag, "debug", false, "gin debug mode with request logging")
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware("aleutian-maze"))
	if debugFlag {
		router.Use(gin.Logger())
	}

	handlers := api.NewHandlers(api.Config{
		Algorithm:    search.Algorithm(cfg.Search.Algorithm),
		Heuristic:    heuristic.Kind(cfg.Search.Heuristic),
		MaxMazeBytes: cfg.Server.MaxMazeBytes,
		Version:      version,
		Logger:       logger.Component("api"),
	})
	api.RegisterRoutes(router.Group("/v1"), handlers)

	metrics := telemetry.MetricsHandler()
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metrics))
	return router
}

func runServe(cmd *cobra.Command, args []string) error {
	if debugFlag {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port = portFlag
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log := logger.Component("server")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting maze server", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return &exitError{code: exitFailure, msg: "failed to start server: " + err.Error(), err: err}
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down maze server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return &exitError{code: exitFailure, msg: "shutdown: " + err.Error(), err: err}
	}
	return nil
}
