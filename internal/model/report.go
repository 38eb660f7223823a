package model

import (
	"fmt"
	"time"
)

var whitespaceLabels = map[rune]string{
	' ':  "SPACE",
	'\n': "RETURN",
	'\t': "TAB",
}

// CharLabel returns the display name of a character.
func CharLabel(r rune) string {
	if label, ok := whitespaceLabels[r]; ok {
		return label
	}
	return string(r)
}

// CharResult is the accuracy of one reference character over a session.
type CharResult struct {
	Char    rune
	Correct int
	Total   int
}

// Accuracy returns Correct/Total, or 1 when the character never occurred.
func (c CharResult) Accuracy() float64 {
	if c.Total == 0 {
		return 1
	}
	return float64(c.Correct) / float64(c.Total)
}

// Label returns the display name of the character.
func (c CharResult) Label() string {
	return CharLabel(c.Char)
}

// String formats the result as "a: 50% (1/2)".
func (c CharResult) String() string {
	return fmt.Sprintf("%s: %s (%d/%d)", c.Label(), percent(c.Accuracy()), c.Correct, c.Total)
}

// Report is the immutable outcome of a completed session.
type Report struct {
	Accuracy     float64
	CorrectChars int
	TotalChars   int
	ErrorEvents  int
	Words        int
	WPM          float64
	StartedAt    time.Time
	FinishedAt   time.Time
	Duration     time.Duration
	Chars        []CharResult
}

// AccuracyLine formats overall accuracy as "Accuracy: 50% (1/2)".
func (r Report) AccuracyLine() string {
	return fmt.Sprintf("Accuracy: %s (%d/%d)", percent(r.Accuracy), r.CorrectChars, r.TotalChars)
}

// WPMLine formats speed with three significant digits.
func (r Report) WPMLine() string {
	return fmt.Sprintf("Words per minute: %.3g", r.WPM)
}

// CharLines formats every per-character result in report order.
func (r Report) CharLines() []string {
	lines := make([]string, 0, len(r.Chars))
	for _, c := range r.Chars {
		lines = append(lines, c.String())
	}
	return lines
}

func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v*100)
}
