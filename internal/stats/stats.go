package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/retype/internal/model"
)

const sparkChars = " .:-=+*#%@"

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 1 {
		copy(out, values)
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		n := i + 1
		if i >= window {
			sum -= values[i-window]
			n = window
		}
		out[i] = sum / float64(n)
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if maxVal-minVal < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	last := len(sparkChars) - 1
	for _, v := range values {
		idx := int(math.Round((v - minVal) / (maxVal - minVal) * float64(last)))
		idx = max(0, min(idx, last))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints totals for the stored sessions.
func RenderSummary(w io.Writer, sessions []model.SessionRecord) error {
	if len(sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	var totalWPM, totalAcc float64
	var practiced time.Duration
	best := sessions[0].WPM
	for _, s := range sessions {
		totalWPM += s.WPM
		totalAcc += s.Accuracy
		practiced += time.Duration(s.DurationMs) * time.Millisecond
		best = math.Max(best, s.WPM)
	}
	count := float64(len(sessions))
	lines := []string{
		"Summary",
		fmt.Sprintf("Sessions: %d", len(sessions)),
		fmt.Sprintf("Practice time: %s", practiced.Round(time.Second)),
		fmt.Sprintf("Avg WPM: %.2f", totalWPM/count),
		fmt.Sprintf("Best WPM: %.2f", best),
		fmt.Sprintf("Avg Accuracy: %.2f%%", totalAcc/count*100),
		"",
	}
	return writeLines(w, lines)
}

// RenderTrend prints smoothed WPM and accuracy sparklines, oldest first.
func RenderTrend(w io.Writer, sessions []model.SessionRecord, window int, color bool) error {
	if len(sessions) == 0 {
		return nil
	}
	wpms := make([]float64, len(sessions))
	accs := make([]float64, len(sessions))
	for i, s := range sessions {
		wpms[i] = s.WPM
		accs[i] = s.Accuracy * 100
	}
	wpms = MovingAverage(wpms, window)
	accs = MovingAverage(accs, window)
	lines := []string{
		fmt.Sprintf("Trend (window %d)", max(window, 1)),
		fmt.Sprintf("WPM      %s  %.1f", colorize(Sparkline(wpms), "\x1b[36m", color), wpms[len(wpms)-1]),
		fmt.Sprintf("Accuracy %s  %.1f%%", colorize(Sparkline(accs), "\x1b[35m", color), accs[len(accs)-1]),
		"",
	}
	return writeLines(w, lines)
}

// RenderCharTable prints per-character aggregates, weakest first.
func RenderCharTable(w io.Writer, aggs []model.CharAggregate, top int) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No character stats found.")
		return err
	}
	weakest := WeakestChars(aggs, top)
	rows := make([][]string, 0, len(weakest))
	for _, agg := range weakest {
		rows = append(rows, []string{
			charDisplay(agg.Char),
			fmt.Sprintf("%.2f%%", aggregateAccuracy(agg)*100),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Total),
		})
	}
	cols := []column{
		{title: "Char"},
		{title: "Accuracy", right: true},
		{title: "Correct", right: true},
		{title: "Total", right: true},
	}
	lines := append([]string{"Weakest Characters"}, formatTable(cols, rows)...)
	return writeLines(w, append(lines, ""))
}

func charDisplay(ch string) string {
	runes := []rune(ch)
	if len(runes) != 1 {
		return ch
	}
	return model.CharLabel(runes[0])
}

func colorize(s, code string, enabled bool) string {
	if !enabled {
		return s
	}
	return code + s + "\x1b[0m"
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
