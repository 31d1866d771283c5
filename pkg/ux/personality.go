// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// PersonalityEnvVar overrides the detected personality level.
const PersonalityEnvVar = "MAZE_PERSONALITY"

// PersonalityLevel names an output profile.
type PersonalityLevel string

const (
	// PersonalityFull draws colored mazes with separators, explored cells,
	// prompts and an animated batch progress line.
	PersonalityFull PersonalityLevel = "full"

	// PersonalityStandard is PersonalityFull without the progress animation.
	PersonalityStandard PersonalityLevel = "standard"

	// PersonalityMinimal keeps colors and prompts but draws only the path:
	// no separators, no explored cells.
	PersonalityMinimal PersonalityLevel = "minimal"

	// PersonalityMachine is plain text for scripts: no colors, separators,
	// prompts or animation.
	PersonalityMachine PersonalityLevel = "machine"
)

// Personality is the resolved output profile for a level.
type Personality struct {
	Level PersonalityLevel

	// Colors enables ANSI styling of mazes and messages.
	Colors bool

	// Separators draws rule lines between the maze, path and footer.
	Separators bool

	// Explored marks visited off-path cells in rendered mazes.
	Explored bool

	// Prompts allows interactive questions when stdin is a terminal.
	Prompts bool

	// Progress animates the batch progress line on stderr.
	Progress bool
}

// ForLevel returns the profile for level. Unknown levels get standard.
func ForLevel(level PersonalityLevel) Personality {
	switch level {
	case PersonalityFull:
		return Personality{Level: level, Colors: true, Separators: true, Explored: true, Prompts: true, Progress: true}
	case PersonalityMinimal:
		return Personality{Level: level, Colors: true, Prompts: true}
	case PersonalityMachine:
		return Personality{Level: level}
	default:
		return Personality{Level: PersonalityStandard, Colors: true, Separators: true, Explored: true, Prompts: true}
	}
}

var (
	currentPersonality = DefaultPersonality()
	personalityMu      sync.RWMutex
)

// GetPersonality returns the current profile.
func GetPersonality() Personality {
	personalityMu.RLock()
	defer personalityMu.RUnlock()
	return currentPersonality
}

// SetPersonality replaces the current profile.
func SetPersonality(p Personality) {
	personalityMu.Lock()
	defer personalityMu.Unlock()
	currentPersonality = p
}

// SetPersonalityLevel switches to the profile for level.
func SetPersonalityLevel(level PersonalityLevel) {
	SetPersonality(ForLevel(level))
}

// ParsePersonalityLevel converts a name or short alias into a level.
func ParsePersonalityLevel(s string) (PersonalityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "f":
		return PersonalityFull, nil
	case "standard", "std", "s", "":
		return PersonalityStandard, nil
	case "minimal", "min", "m":
		return PersonalityMinimal, nil
	case "machine", "quiet", "q":
		return PersonalityMachine, nil
	default:
		return PersonalityStandard, fmt.Errorf("unknown personality %q (want full, standard, minimal or machine)", s)
	}
}

// InitPersonality picks a level from PersonalityEnvVar, falling back to
// machine when stdout is not a terminal and full otherwise. An invalid
// env value is ignored.
func InitPersonality() {
	if envLevel := os.Getenv(PersonalityEnvVar); envLevel != "" {
		if level, err := ParsePersonalityLevel(envLevel); err == nil {
			SetPersonalityLevel(level)
			return
		}
	}
	if !IsTerminal(os.Stdout) {
		SetPersonalityLevel(PersonalityMachine)
		return
	}
	SetPersonalityLevel(PersonalityFull)
}

// IsTerminal reports whether f is attached to a terminal, including
// Cygwin and MSYS pseudo-terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// IsInteractive reports whether prompts may be shown.
func IsInteractive() bool {
	return GetPersonality().Prompts && IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// ShouldShowColors reports whether output should be styled.
func ShouldShowColors() bool {
	return GetPersonality().Colors
}

// DefaultPersonality returns the full profile.
func DefaultPersonality() Personality {
	return ForLevel(PersonalityFull)
}
