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
	"bytes"
	"strings"
	"testing"
)

// capture redirects the print helpers for the duration of f.
func capture(f func()) (string, string) {
	var out, errOut bytes.Buffer
	SetOutput(&out, &errOut)
	defer SetOutput(nil, nil)
	f()
	return out.String(), errOut.String()
}

// withLevel runs f with the given personality level and restores the original.
func withLevel(level PersonalityLevel, f func()) {
	orig := GetPersonality()
	defer SetPersonality(orig)
	SetPersonalityLevel(level)
	f()
}

// =============================================================================
// Icon.Render Tests
// =============================================================================

func TestIcon_Render(t *testing.T) {
	for _, icon := range []Icon{IconSuccess, IconWarning, IconError, IconPending} {
		if icon.Render() == "" {
			t.Errorf("expected non-empty result for %q", icon)
		}
	}
	if IconArrow.Render() != string(IconArrow) {
		t.Errorf("expected unstyled arrow, got %q", IconArrow.Render())
	}
}

// =============================================================================
// Print Helper Tests
// =============================================================================

func TestTitle_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Title("Maze") })
		if out != "" {
			t.Errorf("expected no output in machine mode, got %q", out)
		}
	})
}

func TestTitle_FullMode(t *testing.T) {
	withLevel(PersonalityFull, func() {
		out, _ := capture(func() { Title("Maze") })
		if !strings.Contains(out, "Maze") {
			t.Errorf("expected title in output, got %q", out)
		}
	})
}

func TestSuccess_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Success("solved") })
		if out != "OK: solved\n" {
			t.Errorf("expected 'OK: solved', got %q", out)
		}
	})
}

func TestWarning_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, errOut := capture(func() { Warning("unreachable") })
		if out != "" {
			t.Errorf("expected nothing on stdout, got %q", out)
		}
		if errOut != "WARN: unreachable\n" {
			t.Errorf("expected 'WARN: unreachable', got %q", errOut)
		}
	})
}

func TestError_GoesToStderr(t *testing.T) {
	for _, level := range []PersonalityLevel{PersonalityMachine, PersonalityMinimal, PersonalityFull} {
		withLevel(level, func() {
			out, errOut := capture(func() { Error("The maze file entered was not valid") })
			if out != "" {
				t.Errorf("%s: expected nothing on stdout, got %q", level, out)
			}
			if !strings.Contains(errOut, "The maze file entered was not valid") {
				t.Errorf("%s: expected message on stderr, got %q", level, errOut)
			}
		})
	}
}

func TestInfo_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Info("watching maze.txt") })
		if out != "watching maze.txt\n" {
			t.Errorf("expected plain line, got %q", out)
		}
	})
}

func TestMuted_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Muted("hint") })
		if out != "" {
			t.Errorf("expected no output, got %q", out)
		}
	})
}

func TestBox_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Box("Result", "path length 7") })
		if out != "Result: path length 7\n" {
			t.Errorf("unexpected box output %q", out)
		}
	})
}

func TestFileStatus_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { FileStatus("a.txt", IconSuccess, "path 7") })
		if out != "✓\ta.txt\tpath 7\n" {
			t.Errorf("unexpected status output %q", out)
		}
	})
}

func TestSummary_MachineMode(t *testing.T) {
	withLevel(PersonalityMachine, func() {
		out, _ := capture(func() { Summary(3, 1, 2) })
		want := "SUMMARY: solved=3 unreachable=1 failed=2 total=6\n"
		if out != want {
			t.Errorf("expected %q, got %q", want, out)
		}
	})
}

func TestSummary_FullMode(t *testing.T) {
	withLevel(PersonalityFull, func() {
		out, _ := capture(func() { Summary(3, 1, 2) })
		for _, word := range []string{"solved", "unreachable", "failed", "total"} {
			if !strings.Contains(out, word) {
				t.Errorf("expected %q in summary, got %q", word, out)
			}
		}
	})
}

func TestSetOutput_NilRestoresDefaults(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, &buf)
	if Stdout() != &buf {
		t.Fatal("expected redirected stdout")
	}
	SetOutput(nil, nil)
	if Stdout() == &buf {
		t.Error("expected default stdout after reset")
	}
}
