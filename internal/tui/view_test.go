package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/foxtype/internal/session"
)

func TestSampleCellsStyling(t *testing.T) {
	s := session.NewWithSample("ab c")
	s.Typed = []rune("ax")

	cells := sampleCells(s)
	if len(cells) != 4 {
		t.Fatalf("expected 4 cells, got %d", len(cells))
	}
	if cells[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for matched rune")
	}
	if cells[1].s != incorrectStyle.Render("b") {
		t.Fatalf("expected incorrect style for mismatched rune")
	}
	if cells[2].s != pendingStyle.Render(" ") || !cells[2].isSpace {
		t.Fatalf("expected pending style for untyped space")
	}
	if cells[3].s != pendingStyle.Render("c") {
		t.Fatalf("expected pending style for untyped rune")
	}
}

func TestStatusLinePrompt(t *testing.T) {
	s := session.New()
	if got := statusLine(s, time.Unix(0, 0)); got != "Press any key to start typing!" {
		t.Fatalf("unexpected prompt: %q", got)
	}
}

func TestStatusLineElapsed(t *testing.T) {
	s := session.New()
	start := time.Unix(100, 0)
	s.Type('T', start)
	got := statusLine(s, start.Add(2500*time.Millisecond))
	if got != "Typing... 2.5 seconds" {
		t.Fatalf("unexpected elapsed readout: %q", got)
	}
}

func TestStatusLineFinished(t *testing.T) {
	s := session.New()
	start := time.Unix(0, 0)
	for _, r := range s.Sample {
		s.Type(r, start)
	}
	if !s.Finished {
		t.Fatalf("expected finished session")
	}
	got := statusLine(s, start.Add(60*time.Second))
	if got != "Finished! WPM: 9 | Accuracy: 100.0%" {
		t.Fatalf("unexpected summary: %q", got)
	}
}

func TestPanelTitleAndFrame(t *testing.T) {
	out := panel("Stats", "hello", 12, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "┌Stats─────┐" {
		t.Fatalf("unexpected top border: %q", lines[0])
	}
	if lines[1] != "│hello     │" {
		t.Fatalf("unexpected content line: %q", lines[1])
	}
	if lines[2] != "│          │" {
		t.Fatalf("unexpected blank interior line: %q", lines[2])
	}
	if lines[3] != "└──────────┘" {
		t.Fatalf("unexpected bottom border: %q", lines[3])
	}
}

func TestWrapCellsBreaksAtSpace(t *testing.T) {
	s := session.NewWithSample("one two")
	out := wrapCells(sampleCells(s), 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out)
	}
	if lipgloss.Width(lines[0]) != 3 || lipgloss.Width(lines[1]) != 3 {
		t.Fatalf("expected words split at the space, got %q", out)
	}
}

func TestRenderScreenContainsPanels(t *testing.T) {
	s := session.New()
	out := renderScreen(s, 80, 24, time.Unix(0, 0))
	if !strings.Contains(out, "Type this") || !strings.Contains(out, "Stats") {
		t.Fatalf("expected both panel titles in frame:\n%s", out)
	}
	if !strings.Contains(out, "Press any key to start typing!") {
		t.Fatalf("expected start prompt in frame")
	}
}

func TestRenderScreenDegenerateSize(t *testing.T) {
	s := session.New()
	out := renderScreen(s, 0, 0, time.Unix(0, 0))
	if out != "Press any key to start typing!" {
		t.Fatalf("expected bare status on zero-size surface, got %q", out)
	}
}
