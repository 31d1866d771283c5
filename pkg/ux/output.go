// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ux provides terminal output styling for the maze CLI.
package ux

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Aleutian color palette - deep ocean teals and arctic waters
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7") // Bright teal - highlights
	ColorTealPrimary = lipgloss.Color("#20B9B4") // Primary teal - main brand color
	ColorTealDeep    = lipgloss.Color("#16858E") // Deep teal - borders, accents
	ColorSlate       = lipgloss.Color("#2C4A54") // Slate - muted text, borders

	// Semantic colors
	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#2C4A54")

	// Maze markers
	ColorPath     = lipgloss.Color("#2ECC71") // Green - start, end and path cells
	ColorExplored = lipgloss.Color("#E74C3C") // Red - explored cells off the path
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Box      lipgloss.Style
	ErrorBox lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorSlate),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

var (
	outMu  sync.Mutex
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects the print helpers. Nil writers restore the defaults.
func SetOutput(out, errOut io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

func writers() (io.Writer, io.Writer) {
	outMu.Lock()
	defer outMu.Unlock()
	return stdout, stderr
}

// Stdout returns the writer the print helpers use for normal output.
func Stdout() io.Writer {
	out, _ := writers()
	return out
}

// Print helpers that respect personality level

// Title prints a styled title
func Title(text string) {
	if GetPersonality().Level == PersonalityMachine {
		return
	}
	out, _ := writers()
	fmt.Fprintln(out, Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	out, _ := writers()
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintf(out, "OK: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(out, "%s %s\n", IconSuccess.Render(), text)
	default:
		fmt.Fprintf(out, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func Warning(text string) {
	out, errOut := writers()
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintf(errOut, "WARN: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(out, "%s %s\n", IconWarning.Render(), text)
	default:
		fmt.Fprintf(out, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Error prints an error message
func Error(text string) {
	_, errOut := writers()
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintf(errOut, "ERROR: %s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(errOut, "%s %s\n", IconError.Render(), text)
	default:
		fmt.Fprintf(errOut, "%s %s\n", IconError.Render(), Styles.Error.Render(text))
	}
}

// Info prints an informational message
func Info(text string) {
	out, _ := writers()
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintln(out, text)
	default:
		fmt.Fprintf(out, "%s %s\n", Styles.Muted.Render("│"), text)
	}
}

// Muted prints muted/secondary text
func Muted(text string) {
	if GetPersonality().Level == PersonalityMachine {
		return
	}
	out, _ := writers()
	fmt.Fprintln(out, Styles.Muted.Render(text))
}

// Box prints text in a rounded box
func Box(title, content string) {
	out, _ := writers()
	if GetPersonality().Level == PersonalityMachine {
		fmt.Fprintf(out, "%s: %s\n", title, content)
		return
	}
	fmt.Fprintln(out, Styles.Box.Width(60).Render(Styles.Title.Render(title)+"\n"+content))
}

// FileStatus prints a maze file with its solve status
func FileStatus(path string, status Icon, reason string) {
	out, _ := writers()
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintf(out, "%s\t%s\t%s\n", status, path, reason)
	case PersonalityMinimal:
		fmt.Fprintf(out, "%s %s\n", status.Render(), path)
	default:
		if reason != "" {
			fmt.Fprintf(out, "%s %s %s\n", status.Render(), path, Styles.Muted.Render("("+reason+")"))
		} else {
			fmt.Fprintf(out, "%s %s\n", status.Render(), path)
		}
	}
}

// Summary prints a batch summary line with counts
func Summary(solved, unreachable, failed int) {
	out, _ := writers()
	total := solved + unreachable + failed
	switch GetPersonality().Level {
	case PersonalityMachine:
		fmt.Fprintf(out, "SUMMARY: solved=%d unreachable=%d failed=%d total=%d\n", solved, unreachable, failed, total)
	default:
		fmt.Fprintf(out, "\n%s %s  %s %s  %s %s  %s %s\n",
			Styles.Success.Render(fmt.Sprintf("%d", solved)), Styles.Muted.Render("solved"),
			Styles.Warning.Render(fmt.Sprintf("%d", unreachable)), Styles.Muted.Render("unreachable"),
			Styles.Error.Render(fmt.Sprintf("%d", failed)), Styles.Muted.Render("failed"),
			Styles.Bold.Render(fmt.Sprintf("%d", total)), Styles.Muted.Render("total"),
		)
	}
}
