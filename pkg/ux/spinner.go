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
	"io"
	"os"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Progress is an animated "message [done/total]" line on stderr.
//
// Animation only runs when stderr is a terminal and the personality is not
// machine; otherwise Start and Stop are silent and Increment only counts.
type Progress struct {
	message string
	total   int
	out     io.Writer
	animate bool

	mu      sync.Mutex
	current int
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewProgress creates a progress line for total units of work.
func NewProgress(message string, total int) *Progress {
	_, errOut := writers()
	return &Progress{
		message: message,
		total:   total,
		out:     errOut,
		animate: GetPersonality().Progress && IsTerminal(os.Stderr),
	}
}

// Start begins the animation. Calling Start twice is a no-op.
func (p *Progress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || !p.animate {
		return
	}
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go func() {
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-p.stop:
				fmt.Fprint(p.out, "\r\033[K")
				close(p.done)
				return
			case <-ticker.C:
				fmt.Fprintf(p.out, "\r%s %s", Styles.Title.Render(spinnerFrames[frame]), p.Line())
				frame = (frame + 1) % len(spinnerFrames)
			}
		}
	}()
}

// Increment records one finished unit. Safe for concurrent use.
func (p *Progress) Increment() {
	p.mu.Lock()
	p.current++
	p.mu.Unlock()
}

// Current returns the number of finished units.
func (p *Progress) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Line returns the text shown next to the spinner.
func (p *Progress) Line() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("%s [%d/%d]", p.message, p.current, p.total)
}

// Stop halts the animation and clears the line.
func (p *Progress) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	stop, done := p.stop, p.done
	p.mu.Unlock()

	close(stop)
	<-done
}
