// Copyright 2024-2026 Firefly Software Solutions Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorPrimary = lipgloss.Color("#FF6B35")
	ColorSuccess = lipgloss.Color("#28A745")
	ColorWarning = lipgloss.Color("#FFC107")
	ColorError   = lipgloss.Color("#DC3545")
	ColorInfo    = lipgloss.Color("#17A2B8")
	ColorMuted   = lipgloss.Color("#6C757D")

	StyleBold    = lipgloss.NewStyle().Bold(true)
	StylePrimary = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// ─────────────────────────────────────────────────────────────────────────────
// Printer — core output primitives
// ─────────────────────────────────────────────────────────────────────────────

type Printer struct{}

func NewPrinter() *Printer {
	return &Printer{}
}

func (p *Printer) Success(msg string) {
	fmt.Println(StyleSuccess.Render("  ✓ ") + msg)
}

func (p *Printer) Error(msg string) {
	fmt.Println(StyleError.Render("  ✗ ") + msg)
}

func (p *Printer) Warning(msg string) {
	fmt.Println(StyleWarning.Render("  ! ") + msg)
}

func (p *Printer) Info(msg string) {
	fmt.Println(StyleInfo.Render("  ℹ ") + msg)
}

func (p *Printer) Step(msg string) {
	fmt.Println(StylePrimary.Render("  → ") + msg)
}

func (p *Printer) KeyValue(key, value string) {
	padded := fmt.Sprintf("%-20s", key+":")
	fmt.Printf("  %s %s\n", StyleMuted.Render(padded), value)
}

func (p *Printer) Header(title string) {
	fmt.Println()
	fmt.Println(StylePrimary.Render("  " + title))
	fmt.Println(StyleMuted.Render("  " + strings.Repeat("─", len(title)+2)))
}

func (p *Printer) Newline() {
	fmt.Println()
}

// ─────────────────────────────────────────────────────────────────────────────
// SummaryBox — bordered box for final stats (manifest load summary, etc.)
// ─────────────────────────────────────────────────────────────────────────────

func (p *Printer) SummaryBox(title string, lines []string) {
	maxLen := len(title)
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	width := maxLen + 4

	borderStyle := lipgloss.NewStyle().Foreground(ColorPrimary)
	titleStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	top := borderStyle.Render("  ╭" + strings.Repeat("─", width) + "╮")
	bot := borderStyle.Render("  ╰" + strings.Repeat("─", width) + "╯")
	sep := borderStyle.Render("  ├" + strings.Repeat("─", width) + "┤")

	pad := func(s string) string {
		gap := width - lipgloss.Width(s) - 2
		if gap < 0 {
			gap = 0
		}
		return borderStyle.Render("  │") + " " + s + strings.Repeat(" ", gap) + " " + borderStyle.Render("│")
	}

	fmt.Println()
	fmt.Println(top)
	fmt.Println(pad(titleStyle.Render(title)))
	fmt.Println(sep)
	for _, l := range lines {
		fmt.Println(pad(l))
	}
	fmt.Println(bot)
}

// ─────────────────────────────────────────────────────────────────────────────
// Spinner — braille spinner with elapsed time display
// ─────────────────────────────────────────────────────────────────────────────

type Spinner struct {
	message   string
	done      chan bool
	frames    []string
	startTime time.Time
}

func NewSpinner(message string) *Spinner {
	return &Spinner{
		message: message,
		done:    make(chan bool),
		frames:  []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

func (s *Spinner) Start() {
	s.startTime = time.Now()
	go func() {
		i := 0
		for {
			select {
			case <-s.done:
				return
			default:
				elapsed := time.Since(s.startTime).Truncate(time.Second)
				frame := StylePrimary.Render(s.frames[i%len(s.frames)])
				timer := StyleMuted.Render(fmt.Sprintf(" (%s)", elapsed))
				fmt.Printf("\r  %s %s%s   ", frame, s.message, timer)
				i++
				time.Sleep(80 * time.Millisecond)
			}
		}
	}()
}

func (s *Spinner) Stop(success bool) {
	s.done <- true
	elapsed := time.Since(s.startTime).Truncate(time.Second)
	timer := StyleMuted.Render(fmt.Sprintf(" (%s)", elapsed))
	if success {
		fmt.Printf("\r  %s %s%s   \n", StyleSuccess.Render("✓"), s.message, timer)
	} else {
		fmt.Printf("\r  %s %s%s   \n", StyleError.Render("✗"), s.message, timer)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// LayerHeader — small label indicating the current topological-sort layer
// ─────────────────────────────────────────────────────────────────────────────

func (p *Printer) LayerHeader(layer, totalLayers, nodesInLayer int) {
	label := fmt.Sprintf("Layer %d/%d  (%d nodes)", layer+1, totalLayers, nodesInLayer)
	pad := 40 - len(label)
	if pad < 0 {
		pad = 0
	}
	fmt.Printf("  %s\n", StyleMuted.Render("┄ "+label+" "+strings.Repeat("┄", pad)))
}
