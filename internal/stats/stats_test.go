package stats

import (
	"strings"
	"testing"
)

func TestRunMetrics(t *testing.T) {
	wpm, acc := RunMetrics(9, 40, 4, 60000)
	if wpm != 9.0 {
		t.Fatalf("expected 9.0 WPM for 9 words in one minute, got %f", wpm)
	}
	if acc < 0.909 || acc > 0.91 {
		t.Fatalf("expected ~0.909 accuracy, got %f", acc)
	}
}

func TestRunMetricsZeroDuration(t *testing.T) {
	wpm, acc := RunMetrics(9, 40, 0, 0)
	if wpm != 0 {
		t.Fatalf("expected 0 WPM for zero duration, got %f", wpm)
	}
	if acc != 1.0 {
		t.Fatalf("expected accuracy from keystrokes even with zero duration, got %f", acc)
	}
}

func TestRunMetricsNoKeystrokes(t *testing.T) {
	_, acc := RunMetrics(9, 0, 0, 60000)
	if acc != 0 {
		t.Fatalf("expected 0 accuracy without keystrokes, got %f", acc)
	}
}

func TestMovingAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := MovingAverage(values, 2)
	want := []float64{1, 1.5, 2.5, 3.5, 4.5}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("window 2: expected %v, got %v", want, out)
		}
	}
	out = MovingAverage(values, 1)
	for i := range values {
		if out[i] != values[i] {
			t.Fatalf("window 1 must copy input, got %v", out)
		}
	}
}

func TestSparkline(t *testing.T) {
	flat := Sparkline([]float64{2, 2, 2})
	if len(flat) != 3 || strings.Trim(flat, string(flat[0])) != "" {
		t.Fatalf("expected uniform sparkline for flat series, got %q", flat)
	}
	line := Sparkline([]float64{0, 10})
	if len(line) != 2 {
		t.Fatalf("expected 2 cells, got %q", line)
	}
	if line[0] != ' ' || line[1] != '@' {
		t.Fatalf("expected full range endpoints, got %q", line)
	}
}

func TestResample(t *testing.T) {
	values := []float64{1, 1, 3, 3}
	out := Resample(values, 2)
	if len(out) != 2 || out[0] != 1 || out[1] != 3 {
		t.Fatalf("expected bucket means [1 3], got %v", out)
	}
	out = Resample(values, 10)
	if len(out) != 4 {
		t.Fatalf("short series must pass through, got %v", out)
	}
}

func TestFormatTableAlignment(t *testing.T) {
	lines := formatTable(
		[]string{"Name", "Value"},
		[][]string{{"a", "1"}, {"long", "20"}},
		map[int]bool{1: true},
	)
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(lines))
	}
	if lines[1] != "a        1" {
		t.Fatalf("unexpected row formatting: %q", lines[1])
	}
	if lines[2] != "long    20" {
		t.Fatalf("unexpected row formatting: %q", lines[2])
	}
}
