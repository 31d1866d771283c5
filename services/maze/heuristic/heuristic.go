// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package heuristic provides distance estimates for A* over maze grids.
//
// Both heuristics are admissible and consistent for 4-directional movement
// with unit step cost, so A* using either returns shortest paths.
package heuristic

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/AleutianAI/AleutianMaze/services/maze/grid"
)

// ErrInvalidSelector is returned when a heuristic name is not recognized.
var ErrInvalidSelector = errors.New("invalid heuristic selector")

// Func estimates the remaining cost from a to b.
type Func func(a, b grid.Cell) float64

// Kind selects a heuristic.
type Kind string

const (
	// KindManhattan is |drow| + |dcol|.
	KindManhattan Kind = "manhattan"

	// KindEuclidean is the straight-line distance.
	KindEuclidean Kind = "euclidean"
)

// DefaultKind is used when no heuristic is specified.
const DefaultKind = KindManhattan

// Kinds returns every supported heuristic in display order.
func Kinds() []Kind {
	return []Kind{KindManhattan, KindEuclidean}
}

// String returns the selector name.
func (k Kind) String() string { return string(k) }

// Valid reports whether k names a supported heuristic.
func (k Kind) Valid() bool {
	switch k {
	case KindManhattan, KindEuclidean:
		return true
	default:
		return false
	}
}

// Func returns the estimate function for k.
//
// Unknown kinds return nil; callers should Parse or check Valid first.
func (k Kind) Func() Func {
	switch k {
	case KindManhattan:
		return Manhattan
	case KindEuclidean:
		return Euclidean
	default:
		return nil
	}
}

// Parse converts a selector string into a Kind.
//
// Matching is case-insensitive and ignores surrounding whitespace.
//
// Example:
//
//	k, err := heuristic.Parse(" Euclidean ")
//	// k == heuristic.KindEuclidean
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrInvalidSelector, s, joinKinds())
	}
	return k, nil
}

// Manhattan returns |a.Row-b.Row| + |a.Col-b.Col|.
func Manhattan(a, b grid.Cell) float64 {
	return math.Abs(float64(a.Row-b.Row)) + math.Abs(float64(a.Col-b.Col))
}

// Euclidean returns the straight-line distance between a and b.
func Euclidean(a, b grid.Cell) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

func joinKinds() string {
	kinds := Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
