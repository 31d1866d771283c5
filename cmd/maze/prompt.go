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
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AleutianAI/AleutianMaze/services/maze/heuristic"
)

// promptMazeFile asks for a maze file until an existing regular file is named.
func promptMazeFile() (string, error) {
	var path string
	err := huh.NewInput().
		Title("Maze file").
		Placeholder("maze.txt").
		Value(&path).
		Validate(validateMazeFile).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return "", errors.New("cancelled")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(path), nil
}

func validateMazeFile(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("enter a file name")
	}
	info, err := os.Stat(s)
	if err != nil {
		return fmt.Errorf("cannot open %s", s)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", s)
	}
	return nil
}

// promptHeuristic asks which A* heuristic to use, preselecting def.
func promptHeuristic(def heuristic.Kind) (heuristic.Kind, error) {
	choice := def
	opts := make([]huh.Option[heuristic.Kind], 0, len(heuristic.Kinds()))
	for _, k := range heuristic.Kinds() {
		label := strings.ToUpper(k.String()[:1]) + k.String()[1:]
		opts = append(opts, huh.NewOption(label, k))
	}
	err := huh.NewSelect[heuristic.Kind]().
		Title("Heuristic").
		Options(opts...).
		Value(&choice).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return def, errors.New("cancelled")
	}
	return choice, err
}
