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
	"sync"
	"testing"
)

func TestProgress_CountsWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	SetOutput(&out, &out)
	defer SetOutput(nil, nil)

	p := NewProgress("Solving mazes", 3)
	p.Start()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Increment()
		}()
	}
	wg.Wait()
	p.Stop()

	if got := p.Current(); got != 3 {
		t.Errorf("Current() = %d, want 3", got)
	}
	if got := p.Line(); got != "Solving mazes [3/3]" {
		t.Errorf("Line() = %q, want %q", got, "Solving mazes [3/3]")
	}
	if out.Len() != 0 {
		t.Errorf("expected no animation output off a terminal, got %q", out.String())
	}
}

func TestProgress_StopWithoutStart(t *testing.T) {
	p := NewProgress("idle", 1)
	p.Stop()
	p.Stop()
}

func TestProgress_AnimatesWhenForced(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress("Solving", 1)
	p.out = &out
	p.animate = true

	p.Start()
	p.Start()
	p.Increment()
	p.Stop()

	if out.Len() == 0 {
		t.Error("expected the cleared line to be written on Stop")
	}
}

func TestNewProgress_AnimatesOnlyWithProgressProfile(t *testing.T) {
	orig := GetPersonality()
	defer SetPersonality(orig)

	for _, level := range []PersonalityLevel{PersonalityStandard, PersonalityMinimal, PersonalityMachine} {
		SetPersonalityLevel(level)
		if p := NewProgress("Solving mazes", 3); p.animate {
			t.Errorf("level %s must not animate", level)
		}
	}
}
