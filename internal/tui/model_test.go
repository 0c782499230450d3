package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/foxtype/internal/model"
	"github.com/verte-zerg/foxtype/internal/session"
	"github.com/verte-zerg/foxtype/internal/store"
)

// testClock hands out strictly increasing timestamps.
type testClock struct {
	at time.Time
}

func (c *testClock) now() time.Time {
	c.at = c.at.Add(250 * time.Millisecond)
	return c.at
}

func newTestModel(cfg model.Config, st *store.Store) (*Model, *testClock) {
	m := NewModel(cfg, st)
	clock := &testClock{at: time.Unix(0, 0)}
	m.now = clock.now
	return m, clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdateTypesRunes(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	m.Update(keyRunes("Th"))
	if string(m.sess.Typed) != "Th" {
		t.Fatalf("expected typed text Th, got %q", string(m.sess.Typed))
	}
	if !m.sess.Started {
		t.Fatalf("expected clock started on first rune")
	}
}

func TestUpdateSpaceKey(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	m.Update(keyRunes("a"))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if string(m.sess.Typed) != "a " {
		t.Fatalf("expected space appended, got %q", string(m.sess.Typed))
	}
}

func TestUpdateBackspace(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if len(m.sess.Typed) != 0 {
		t.Fatalf("backspace on empty input must be a no-op")
	}
	m.Update(keyRunes("ab"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if string(m.sess.Typed) != "a" {
		t.Fatalf("expected one rune removed, got %q", string(m.sess.Typed))
	}
}

func TestUpdateEscQuits(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.sess.Quit {
		t.Fatalf("expected quit flag after Esc")
	}
	if cmd == nil {
		t.Fatalf("expected quit command from Esc")
	}
}

func TestUpdateIgnoresOtherKeys(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	for _, typ := range []tea.KeyType{tea.KeyUp, tea.KeyDown, tea.KeyF1, tea.KeyTab, tea.KeyEnter} {
		m.Update(tea.KeyMsg{Type: typ})
	}
	if len(m.sess.Typed) != 0 || m.sess.Started || m.sess.Quit {
		t.Fatalf("non-typing keys must not change session state")
	}
}

func TestKeystrokeCounters(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	m.sess = session.NewWithSample("ab")
	m.Update(keyRunes("x"))
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	m.Update(keyRunes("ab"))
	if m.correctKeys != 2 || m.incorrectKeys != 1 {
		t.Fatalf("expected 2 correct / 1 incorrect keystrokes, got %d/%d", m.correctKeys, m.incorrectKeys)
	}
	entry := m.charStats['a']
	if entry == nil || entry.correct != 1 || entry.incorrect != 1 {
		t.Fatalf("unexpected per-char stats for a: %+v", entry)
	}
}

func TestTypingLockedAfterFinishInUpdate(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	m.sess = session.NewWithSample("hi")
	m.Update(keyRunes("hi"))
	if !m.sess.Finished {
		t.Fatalf("expected finished session")
	}
	m.Update(keyRunes("more"))
	if string(m.sess.Typed) != "hi" {
		t.Fatalf("typed text must stay locked after finish, got %q", string(m.sess.Typed))
	}
}

func TestFinishedRunIsRecordedOnce(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "foxtype.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	m, _ := newTestModel(model.Config{Record: true}, st)
	m.sess = session.NewWithSample("go on")
	m.Update(keyRunes("go on"))
	if !m.sess.Finished {
		t.Fatalf("expected finished session")
	}
	// Backspacing and retyping after the finish must not insert again.
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})

	runs, err := st.ListRuns(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected exactly one recorded run, got %d", len(runs))
	}
	if runs[0].Words != 2 || runs[0].Correct != 4 {
		t.Fatalf("unexpected run record: %+v", runs[0])
	}
	if runs[0].DurationMs <= 0 {
		t.Fatalf("expected positive duration, got %d", runs[0].DurationMs)
	}
}

func TestRecordingDisabled(t *testing.T) {
	m, _ := newTestModel(model.Config{Record: false}, nil)
	m.sess = session.NewWithSample("hi")
	m.Update(keyRunes("hi"))
	if !m.recorded {
		t.Fatalf("expected record transition to be marked even when disabled")
	}
}

func TestViewRendersWithoutSize(t *testing.T) {
	m, _ := newTestModel(model.Config{}, nil)
	if out := m.View(); out == "" {
		t.Fatalf("expected non-empty view before first resize")
	}
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if out := m.View(); out == "" {
		t.Fatalf("expected non-empty view after resize")
	}
}
