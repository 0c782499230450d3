// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/foxtype/internal/model"
	"github.com/verte-zerg/foxtype/internal/store"
)

const (
	terminalWidthBackup = 80
	maxRunTableRows     = 15
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs     []model.RunAggregate
	CharAggs []model.CharAggregate
}

// BuildReport loads and prepares run history for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	runs, err := st.ListRuns(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(runs) > cfg.Last {
		runs = runs[len(runs)-cfg.Last:]
	}
	charAggs, err := st.ListCharAggregatesForRuns(ctx, RunIDs(runs))
	if err != nil {
		return Report{}, err
	}
	return Report{Runs: runs, CharAggs: charAggs}, nil
}

// RunIDs extracts the run ids from aggregates in order.
func RunIDs(runs []model.RunAggregate) []int64 {
	ids := make([]int64, len(runs))
	for i, r := range runs {
		ids[i] = r.RunID
	}
	return ids
}

// RenderReport prints the full plain-text report sized to the terminal.
func RenderReport(w io.Writer, report Report, window int) error {
	width := terminalWidth()
	if err := RenderSummary(w, report.Runs); err != nil {
		return err
	}
	if err := RenderTrend(w, report.Runs, window, width); err != nil {
		return err
	}
	if err := RenderCharTable(w, report.CharAggs); err != nil {
		return err
	}
	return RenderRunTable(w, report.Runs)
}

// RenderSummary prints a summary block for runs.
func RenderSummary(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded yet.")
		return err
	}
	var totalWPM, totalAcc float64
	bestWPM := 0.0
	var totalMs int64
	for _, r := range runs {
		wpm, acc := RunMetrics(r.Words, r.Correct, r.Incorrect, r.DurationMs)
		totalWPM += wpm
		totalAcc += acc
		totalMs += r.DurationMs
		if wpm > bestWPM {
			bestWPM = wpm
		}
	}
	count := float64(len(runs))
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Runs: %d\n", len(runs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", totalWPM/count); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", bestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Time typed: %s\n", (time.Duration(totalMs) * time.Millisecond).Round(time.Second)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderTrend prints WPM and accuracy sparklines with a moving average.
func RenderTrend(w io.Writer, runs []model.RunAggregate, window, width int) error {
	if len(runs) < 2 {
		return nil
	}
	wpms := make([]float64, len(runs))
	accs := make([]float64, len(runs))
	for i, r := range runs {
		wpm, acc := RunMetrics(r.Words, r.Correct, r.Incorrect, r.DurationMs)
		wpms[i] = wpm
		accs[i] = acc * 100
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)

	lineWidth := width - 20
	if lineWidth < 10 {
		lineWidth = 10
	}
	wpms = Resample(wpms, lineWidth)
	accs = Resample(accs, lineWidth)

	if _, err := fmt.Fprintf(w, "Trend (moving average over %d runs)\n", window); err != nil {
		return err
	}
	if err := renderSparkRow(w, "WPM", wpms); err != nil {
		return err
	}
	if err := renderSparkRow(w, "Accuracy", accs); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderSparkRow(w io.Writer, name string, values []float64) error {
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	_, err := fmt.Fprintf(w, "%-9s [%s] min=%.1f max=%.1f\n", name, Sparkline(values), minVal, maxVal)
	return err
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate) error {
	if len(aggs) == 0 {
		return nil
	}
	type row struct {
		char      string
		acc       float64
		latency   float64
		correct   int
		incorrect int
	}
	rows := make([]row, 0, len(aggs))
	for _, agg := range aggs {
		charLabel := agg.Char
		if charLabel == " " {
			charLabel = "<space>"
		}
		total := agg.Correct + agg.Incorrect
		acc := 0.0
		if total > 0 {
			acc = float64(agg.Correct) / float64(total)
		}
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, row{
			char:      charLabel,
			acc:       acc,
			latency:   lat,
			correct:   agg.Correct,
			incorrect: agg.Incorrect,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].acc == rows[j].acc {
			return rows[i].char < rows[j].char
		}
		return rows[i].acc < rows[j].acc
	})

	if _, err := fmt.Fprintln(w, "Per-Character"); err != nil {
		return err
	}
	headers := []string{"Char", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{
			r.char,
			fmt.Sprintf("%.2f%%", r.acc*100),
			fmt.Sprintf("%.1f", r.latency),
			fmt.Sprintf("%d", r.correct),
			fmt.Sprintf("%d", r.incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, tableRows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderRunTable prints the most recent runs, newest last.
func RenderRunTable(w io.Writer, runs []model.RunAggregate) error {
	if len(runs) == 0 {
		return nil
	}
	if len(runs) > maxRunTableRows {
		runs = runs[len(runs)-maxRunTableRows:]
	}
	if _, err := fmt.Fprintln(w, "Recent Runs"); err != nil {
		return err
	}
	headers := []string{"When", "WPM", "Accuracy", "Duration"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		wpm, acc := RunMetrics(r.Words, r.Correct, r.Incorrect, r.DurationMs)
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%.1f", wpm),
			fmt.Sprintf("%.1f%%", acc*100),
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000.0),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
