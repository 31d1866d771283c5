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
	"os"
	"sync"
	"testing"
)

func TestSetPersonality_AndGet(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonality(Personality{Level: PersonalityMinimal, Colors: true})

	got := GetPersonality()
	if got.Level != PersonalityMinimal || !got.Colors || got.Separators {
		t.Errorf("unexpected personality %+v", got)
	}
}

func TestParsePersonalityLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    PersonalityLevel
		wantErr bool
	}{
		{"full", PersonalityFull, false},
		{"F", PersonalityFull, false},
		{"standard", PersonalityStandard, false},
		{"std", PersonalityStandard, false},
		{"", PersonalityStandard, false},
		{"minimal", PersonalityMinimal, false},
		{" min ", PersonalityMinimal, false},
		{"machine", PersonalityMachine, false},
		{"quiet", PersonalityMachine, false},
		{"bogus", PersonalityStandard, true},
	}
	for _, tt := range tests {
		got, err := ParsePersonalityLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePersonalityLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePersonalityLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestForLevel(t *testing.T) {
	tests := []struct {
		level PersonalityLevel
		want  Personality
	}{
		{PersonalityFull, Personality{Level: PersonalityFull, Colors: true, Separators: true, Explored: true, Prompts: true, Progress: true}},
		{PersonalityStandard, Personality{Level: PersonalityStandard, Colors: true, Separators: true, Explored: true, Prompts: true}},
		{PersonalityMinimal, Personality{Level: PersonalityMinimal, Colors: true, Prompts: true}},
		{PersonalityMachine, Personality{Level: PersonalityMachine}},
		{PersonalityLevel("other"), Personality{Level: PersonalityStandard, Colors: true, Separators: true, Explored: true, Prompts: true}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			if got := ForLevel(tt.level); got != tt.want {
				t.Errorf("ForLevel(%q) = %+v, want %+v", tt.level, got, tt.want)
			}
		})
	}
}

func TestInitPersonality_WithEnvVar(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	t.Setenv(PersonalityEnvVar, "minimal")
	InitPersonality()

	if got := GetPersonality().Level; got != PersonalityMinimal {
		t.Errorf("expected minimal from env, got %v", got)
	}
}

func TestInitPersonality_InvalidEnvVarIgnored(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	t.Setenv(PersonalityEnvVar, "loud")
	InitPersonality()

	want := PersonalityMachine
	if IsTerminal(os.Stdout) {
		want = PersonalityFull
	}
	if got := GetPersonality().Level; got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestInitPersonality_NoEnvVar(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	t.Setenv(PersonalityEnvVar, "")
	InitPersonality()

	// Under go test stdout is usually not a terminal.
	want := PersonalityMachine
	if IsTerminal(os.Stdout) {
		want = PersonalityFull
	}
	if got := GetPersonality().Level; got != want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestIsTerminal_NilAndFile(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file must not be a terminal")
	}

	f, err := os.CreateTemp(t.TempDir(), "tty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if IsTerminal(f) {
		t.Error("regular file must not be a terminal")
	}
}

func TestIsInteractive_MachineMode(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)
	if IsInteractive() {
		t.Error("machine mode must never be interactive")
	}
}

func TestShouldShowColors(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	SetPersonalityLevel(PersonalityMachine)
	if ShouldShowColors() {
		t.Error("expected no colors in machine mode")
	}
	SetPersonalityLevel(PersonalityMinimal)
	if !ShouldShowColors() {
		t.Error("expected colors in minimal mode")
	}
}

func TestDefaultPersonality(t *testing.T) {
	if got := DefaultPersonality(); got != ForLevel(PersonalityFull) {
		t.Errorf("expected full default, got %+v", got)
	}
}

func TestPersonality_ConcurrentAccess(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetPersonalityLevel(PersonalityMinimal)
		}()
		go func() {
			defer wg.Done()
			_ = GetPersonality()
		}()
	}
	wg.Wait()
}
