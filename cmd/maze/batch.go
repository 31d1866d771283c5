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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/AleutianMaze/pkg/ux"
	"github.com/AleutianAI/AleutianMaze/services/maze/solver"
)

var (
	concurrencyFlag int

	batchCmd = &cobra.Command{
		Use:   "batch maze-file...",
		Short: "Solve many maze files concurrently and print a summary",
		Long: `Batch solves every file given, one line per file, then prints a summary.

Exit status is 1 if any file failed, otherwise 2 if any maze had no path,
otherwise 0.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runBatch,
	}
)

func init() {
	addSearchFlags(batchCmd)
	batchCmd.Flags().IntVarP(&concurrencyFlag, "concurrency", "c", 0, "mazes solved at once (default from config)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	alg, kind, err := searchSettings(cmd)
	if err != nil {
		return err
	}
	concurrency := cfg.Batch.MaxConcurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = concurrencyFlag
	}

	progress := ux.NewProgress("Solving mazes", len(args))
	s := solver.New(
		solver.WithAlgorithm(alg),
		solver.WithHeuristic(kind),
		solver.WithConcurrency(concurrency),
		solver.WithOnOutcome(func(*solver.Outcome) { progress.Increment() }),
		solver.WithLogger(logger.Component("batch")),
	)
	progress.Start()
	outcomes, err := s.SolveAll(cmd.Context(), args)
	progress.Stop()
	for _, o := range outcomes {
		if o != nil {
			printOutcome(o)
		}
	}
	if err != nil {
		return &exitError{code: exitFailure, msg: err.Error(), err: err}
	}

	sum := solver.Summarize(outcomes)
	ux.Summary(sum.Solved, sum.Unreachable, sum.Failed)
	return batchExitError(sum)
}

func printOutcome(o *solver.Outcome) {
	switch {
	case o.Solved():
		ux.FileStatus(o.Source, ux.IconSuccess, fmt.Sprintf("path %d, explored %d, %s",
			o.Result.Length(), o.Result.Explored, o.Elapsed))
	case o.Unreachable():
		ux.FileStatus(o.Source, ux.IconWarning, fmt.Sprintf("no path, explored %d", o.Result.Explored))
	default:
		ux.FileStatus(o.Source, ux.IconError, o.Err.Error())
	}
}

func batchExitError(sum solver.Summary) error {
	switch {
	case sum.Failed > 0:
		return &exitError{code: exitFailure, msg: fmt.Sprintf("%d of %d mazes failed", sum.Failed, sum.Total())}
	case sum.Unreachable > 0:
		return &exitError{code: exitUnreachable}
	default:
		return nil
	}
}
