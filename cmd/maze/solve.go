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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMaze/pkg/ux"
	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
	"github.com/AleutianAI/AleutianMaze/services/maze/render"
	"github.com/AleutianAI/AleutianMaze/services/maze/search"
	"github.com/AleutianAI/AleutianMaze/services/maze/solver"
	"github.com/AleutianAI/AleutianMaze/services/maze/watch"
)

var (
	algorithmFlag  string
	heuristicFlag  string
	plainFlag      bool
	noExploredFlag bool
	watchFlag      bool

	solveCmd = &cobra.Command{
		Use:   "solve [maze-file]",
		Short: "Solve one maze file and print the solved maze",
		Long: `Solve reads a maze file, finds a path from the opening in the top row
to the opening in the bottom row, and prints the maze with the path marked.

Exit status is 0 when a path is found, 2 when the maze is valid but has no
path, and 1 on any other error. Without a file argument on a terminal, the
file name and heuristic are prompted for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}
)

func init() {
	addSearchFlags(solveCmd)
	solveCmd.Flags().BoolVar(&plainFlag, "plain", false, "render without colors")
	solveCmd.Flags().BoolVar(&noExploredFlag, "no-explored", false, "do not mark explored cells")
	solveCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "solve again whenever the file changes")
}

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&algorithmFlag, "algorithm", "a", "", "search algorithm: astar or dfs")
	cmd.Flags().StringVar(&heuristicFlag, "heuristic", "", "A* heuristic: manhattan or euclidean")
}

// searchSettings resolves the algorithm and heuristic from flags and config.
func searchSettings(cmd *cobra.Command) (search.Algorithm, heuristic.Kind, error) {
	algName := cfg.Search.Algorithm
	if cmd.Flags().Changed("algorithm") {
		algName = algorithmFlag
	}
	alg, err := search.ParseAlgorithm(algName)
	if err != nil {
		return "", "", &exitError{code: exitFailure, msg: err.Error(), err: err}
	}

	kindName := cfg.Search.Heuristic
	if cmd.Flags().Changed("heuristic") {
		kindName = heuristicFlag
	}
	kind, err := heuristic.Parse(kindName)
	if err != nil {
		return "", "", &exitError{code: exitFailure, msg: err.Error(), err: err}
	}
	return alg, kind, nil
}

// newRenderer combines the render config, the current personality and the
// --plain and --no-explored flags. The flags win.
func newRenderer(cmd *cobra.Command) *render.Renderer {
	p := ux.GetPersonality()
	mode, err := render.ParseMode(cfg.Render.Mode)
	if err != nil || plainFlag || !p.Colors {
		mode = render.ModePlain
	}
	show := cfg.Render.ShowExplored && p.Explored
	if cmd.Flags().Changed("no-explored") {
		show = !noExploredFlag
	}
	return render.New(
		render.WithMode(mode),
		render.WithShowExplored(show),
		render.WithSeparators(p.Separators),
	)
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	alg, kind, err := searchSettings(cmd)
	if err != nil {
		return err
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		if !ux.IsInteractive() {
			return &exitError{code: exitFailure, msg: "a maze file is required when not running on a terminal"}
		}
		path, err = promptMazeFile()
		if err != nil {
			return &exitError{code: exitFailure, msg: msgInvalidMaze, err: err}
		}
		if alg == search.AlgorithmAStar && !cmd.Flags().Changed("heuristic") {
			if kind, err = promptHeuristic(kind); err != nil {
				return &exitError{code: exitFailure, msg: err.Error(), err: err}
			}
		}
	}

	s := solver.New(
		solver.WithAlgorithm(alg),
		solver.WithHeuristic(kind),
		solver.WithLogger(logger.Component("solver")),
	)
	r := newRenderer(cmd)

	err = solveAndReport(ctx, s, r, path)
	if !watchFlag {
		return solveExitError(err)
	}
	if err != nil && !errors.Is(err, search.ErrUnreachable) {
		ux.Error(msgInvalidMaze + ": " + err.Error())
	}
	return watchAndSolve(ctx, s, r, path)
}

// solveAndReport solves path and writes the report to stdout.
//
// A report is written whenever a graph was built, including the
// unreachable case.
func solveAndReport(ctx context.Context, s *solver.Solver, r *render.Renderer, path string) error {
	out, err := s.SolveFile(ctx, path)
	if out.Graph != nil && out.Result != nil {
		if werr := r.Report(ux.Stdout(), out.Graph, out.Result, out.Elapsed); werr != nil {
			return fmt.Errorf("write report: %w", werr)
		}
	}
	if out.Unreachable() {
		ux.Warning("No path from the start cell to the end cell")
	}
	return err
}

func watchAndSolve(ctx context.Context, s *solver.Solver, r *render.Renderer, path string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New([]string{path}, func(ctx context.Context, changes []watch.Change) {
		for _, c := range changes {
			if c.Op == watch.OpRemove {
				ux.Warning(c.Path + " was removed; waiting for it to come back")
				continue
			}
			ux.Info("Maze changed, solving again")
			if err := solveAndReport(ctx, s, r, c.Path); err != nil && !errors.Is(err, search.ErrUnreachable) {
				ux.Error(msgInvalidMaze + ": " + err.Error())
			}
		}
	}, &watch.Options{Logger: logger.Component("watch")})
	if err != nil {
		return &exitError{code: exitFailure, msg: err.Error(), err: err}
	}

	ux.Muted("Watching " + path + " (Ctrl+C to stop)")
	return w.Run(ctx)
}
