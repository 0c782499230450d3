// Package session holds the typing run state machine and its derived metrics.
package session

import (
	"strings"
	"time"
)

// DefaultSample is the reference text every run is measured against.
const DefaultSample = "The quick brown fox jumps over the lazy dog."

// Session is the mutable state of a single typing run. It is owned by
// the run loop, mutated only through the handler methods below, and
// read by the renderer.
type Session struct {
	Sample string
	Typed  []rune

	Started   bool
	StartedAt time.Time

	Finished   bool
	FinishedAt time.Time

	Quit bool
}

// New constructs a session for the default sample text.
func New() *Session {
	return NewWithSample(DefaultSample)
}

// NewWithSample constructs a session for an arbitrary sample text.
func NewWithSample(sample string) *Session {
	return &Session{Sample: sample}
}

// RequestQuit flags the session for termination. The run loop checks
// the flag once per iteration.
func (s *Session) RequestQuit() {
	s.Quit = true
}

// Type appends a printable rune typed at the given time. Input is
// ignored once the run has finished. The first rune starts the clock;
// the start time is never reset afterwards.
func (s *Session) Type(r rune, now time.Time) {
	if s.Finished {
		return
	}
	if !s.Started {
		s.Started = true
		s.StartedAt = now
	}
	s.Typed = append(s.Typed, r)
	s.tryFinish(now)
}

// Backspace removes the last typed rune. It is a no-op on empty input
// and is permitted even after the run has finished. Shrinking overshot
// input back to an exact sample match completes the run.
func (s *Session) Backspace(now time.Time) {
	if len(s.Typed) == 0 {
		return
	}
	s.Typed = s.Typed[:len(s.Typed)-1]
	s.tryFinish(now)
}

// tryFinish marks the run finished on an exact match with the sample.
// Finished is monotonic: once set it never reverses, even if backspace
// later makes the typed text diverge from the sample again.
func (s *Session) tryFinish(now time.Time) {
	if s.Finished {
		return
	}
	sample := []rune(s.Sample)
	if len(s.Typed) >= len(sample) && string(s.Typed) == s.Sample {
		s.Finished = true
		s.FinishedAt = now
	}
}

// WordCount estimates words in the sample as space count plus one.
// Consecutive spaces are not collapsed.
func (s *Session) WordCount() int {
	return strings.Count(s.Sample, " ") + 1
}

// Elapsed is the wall time since the first keystroke, zero before the
// run starts.
func (s *Session) Elapsed(now time.Time) time.Duration {
	if !s.Started {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// WPM is words per minute measured against elapsed wall time at now.
func (s *Session) WPM(now time.Time) float64 {
	minutes := s.Elapsed(now).Minutes()
	if minutes <= 0 {
		return 0
	}
	return float64(s.WordCount()) / minutes
}

// Accuracy is the running positional accuracy of the typed text in
// percent. Empty input counts as 100. Positions typed past the end of
// the sample have no matching sample rune and count as mismatches.
func (s *Session) Accuracy() float64 {
	if len(s.Typed) == 0 {
		return 100.0
	}
	sample := []rune(s.Sample)
	correct := 0
	for i, r := range s.Typed {
		if i < len(sample) && sample[i] == r {
			correct++
		}
	}
	return float64(correct) / float64(len(s.Typed)) * 100.0
}
