// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/foxtype/internal/session"
)

const (
	outerMargin    = 2
	minInnerWidth  = 10
	minInnerHeight = 6
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5AF78E"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type styledCell struct {
	s       string
	width   int
	isSpace bool
}

// renderScreen draws the two-panel frame: the color-coded sample on
// top, the status line below, both bordered, with a fixed outer margin.
func renderScreen(s *session.Session, width, height int, now time.Time) string {
	status := statusLine(s, now)
	innerW := width - 2*outerMargin
	innerH := height - 2*outerMargin
	if width <= 0 || height <= 0 || innerW < minInnerWidth || innerH < minInnerHeight {
		// Degenerate surface: skip the panel chrome.
		return status
	}
	topH := innerH / 2
	bottomH := innerH - topH

	sampleText := wrapCells(sampleCells(s), innerW-2)
	top := panel("Type this", sampleText, innerW, topH)
	bottom := panel("Stats", runewidth.Truncate(status, innerW-2, ""), innerW, bottomH)
	return lipgloss.NewStyle().Margin(outerMargin, outerMargin).Render(top + "\n" + bottom)
}

// statusLine picks exactly one of the three stats messages, in
// priority order: finished summary, live elapsed readout, start prompt.
func statusLine(s *session.Session, now time.Time) string {
	switch {
	case s.Finished:
		return fmt.Sprintf("Finished! WPM: %.0f | Accuracy: %.1f%%", s.WPM(now), s.Accuracy())
	case s.Started:
		return fmt.Sprintf("Typing... %.1f seconds", s.Elapsed(now).Seconds())
	default:
		return "Press any key to start typing!"
	}
}

// sampleCells styles every sample rune against the typed text at the
// same position: matched, mismatched, or not yet typed.
func sampleCells(s *session.Session) []styledCell {
	sample := []rune(s.Sample)
	out := make([]styledCell, 0, len(sample))
	for i, target := range sample {
		style := pendingStyle
		if i < len(s.Typed) {
			if s.Typed[i] == target {
				style = correctStyle
			} else {
				style = incorrectStyle
			}
		}
		out = append(out, styledCell{
			s:       style.Render(string(target)),
			width:   runewidth.RuneWidth(target),
			isSpace: target == ' ',
		})
	}
	return out
}

// panel draws a bordered box with the title spliced into the top
// border. Content lines are clipped to the interior.
func panel(title, content string, width, height int) string {
	if width < 2 || height < 2 {
		return content
	}
	inner := width - 2
	shownTitle := runewidth.Truncate(title, inner, "")

	var b strings.Builder
	b.WriteString("┌")
	b.WriteString(shownTitle)
	b.WriteString(strings.Repeat("─", inner-runewidth.StringWidth(shownTitle)))
	b.WriteString("┐")

	lines := strings.Split(content, "\n")
	for row := 0; row < height-2; row++ {
		line := ""
		if row < len(lines) {
			line = lines[row]
		}
		b.WriteString("\n│")
		b.WriteString(line)
		if pad := inner - lipgloss.Width(line); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString("│")
	}

	b.WriteString("\n└")
	b.WriteString(strings.Repeat("─", inner))
	b.WriteString("┘")
	return b.String()
}

func renderCells(cells []styledCell) string {
	var b strings.Builder
	for _, cell := range cells {
		b.WriteString(cell.s)
	}
	return b.String()
}

// wrapCells word-wraps styled cells to the given display width,
// breaking at spaces when one is available on the current line.
func wrapCells(cells []styledCell, width int) string {
	if width <= 0 {
		return renderCells(cells)
	}
	var out strings.Builder
	line := make([]styledCell, 0, len(cells))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(cells); {
		cell := cells[i]
		if lineWidth+cell.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderCells(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledCell{}, line[lastSpaceIdx+1:]...)
				lineWidth = cellsWidth(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderCells(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, cell)
		lineWidth += cell.width
		if cell.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderCells(line))
	return out.String()
}

func cellsWidth(line []styledCell) int {
	total := 0
	for _, cell := range line {
		total += cell.width
	}
	return total
}

func lastSpaceIndex(line []styledCell) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
