// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/foxtype/internal/model"
	"github.com/verte-zerg/foxtype/internal/session"
	"github.com/verte-zerg/foxtype/internal/store"
)

// tickInterval drives idle redraws for the live elapsed readout.
const tickInterval = 100 * time.Millisecond

type tickMsg time.Time

type charStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	config model.Config
	store  *store.Store
	sess   *session.Session

	width  int
	height int

	// Cumulative keystroke counters for the history record. These keep
	// counting through mistakes and corrections, unlike the positional
	// accuracy shown live in the stats panel.
	correctKeys   int
	incorrectKeys int
	charStats     map[rune]*charStat
	prevCorrectAt time.Time

	recorded bool

	now func() time.Time
}

// NewModel constructs a typing TUI model. The store may be nil when
// history recording is disabled.
func NewModel(cfg model.Config, st *store.Store) *Model {
	return &Model{
		config:    cfg,
		store:     st,
		sess:      session.New(),
		charStats: map[rune]*charStat{},
		now:       time.Now,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.MouseMsg:
		// Mouse capture is enabled for the screen, but events carry no
		// meaning for the typing state.
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.sess.RequestQuit()
		return m, tea.Quit
	case tea.KeyBackspace, tea.KeyDelete:
		wasFinished := m.sess.Finished
		m.sess.Backspace(m.now())
		if !wasFinished && m.sess.Finished {
			m.recordRun()
		}
		return m, nil
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
		return m, nil
	case tea.KeyRunes:
		m.handleRunes(msg.Runes)
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		if m.sess.Finished {
			return
		}
		pos := len(m.sess.Typed)
		now := m.now()
		m.sess.Type(r, now)
		m.updateKeystrokeStats(pos, r, now)
		if m.sess.Finished {
			m.recordRun()
		}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	return renderScreen(m.sess, m.width, m.height, m.now())
}

// updateKeystrokeStats accumulates per-run keystroke counters. Spaces
// and runes typed past the end of the sample carry no per-char entry.
func (m *Model) updateKeystrokeStats(pos int, typed rune, now time.Time) {
	sample := []rune(m.sess.Sample)
	if pos >= len(sample) {
		m.incorrectKeys++
		return
	}
	expected := sample[pos]
	if expected == ' ' {
		return
	}
	entry := m.charEntry(expected)
	if typed == expected {
		m.correctKeys++
		entry.correct++
		if !m.prevCorrectAt.IsZero() {
			delta := now.Sub(m.prevCorrectAt)
			entry.latencySumMs += delta.Milliseconds()
			entry.latencyCount++
		}
		m.prevCorrectAt = now
		return
	}
	m.incorrectKeys++
	entry.incorrect++
}

func (m *Model) charEntry(expected rune) *charStat {
	if m.charStats == nil {
		m.charStats = map[rune]*charStat{}
	}
	entry, ok := m.charStats[expected]
	if !ok {
		entry = &charStat{}
		m.charStats[expected] = entry
	}
	return entry
}

// recordRun persists the finished run exactly once. Store failures are
// logged and never interrupt the screen.
func (m *Model) recordRun() {
	if m.recorded {
		return
	}
	m.recorded = true
	if !m.config.Record || m.store == nil {
		return
	}

	run := model.RunStats{
		StartedAt:  m.sess.StartedAt,
		EndedAt:    m.sess.FinishedAt,
		Words:      m.sess.WordCount(),
		SampleLen:  len([]rune(m.sess.Sample)),
		Correct:    m.correctKeys,
		Incorrect:  m.incorrectKeys,
		DurationMs: m.sess.FinishedAt.Sub(m.sess.StartedAt).Milliseconds(),
	}
	chars := make([]model.CharStats, 0, len(m.charStats))
	for ch, entry := range m.charStats {
		chars = append(chars, model.CharStats{
			Char:         string(ch),
			Correct:      entry.correct,
			Incorrect:    entry.incorrect,
			LatencySumMs: entry.latencySumMs,
			LatencyCount: entry.latencyCount,
		})
	}

	if _, err := m.store.InsertRun(context.Background(), run, chars); err != nil {
		logErrf("failed to save run: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
