package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/passage"
)

func TestCalculateAccuracyAndSpeed(t *testing.T) {
	start := time.Unix(1000, 0)
	p := passage.New("one two three")
	remaining := p.Totals()
	remaining['t'] = 1

	report := Calculate(Input{
		Passage:     p,
		Remaining:   remaining,
		ErrorEvents: 1,
		StartedAt:   start,
		FinishedAt:  start.Add(30 * time.Second),
	})

	assert.Equal(t, 13, report.TotalChars)
	assert.Equal(t, 12, report.CorrectChars)
	assert.InDelta(t, 12.0/13.0, report.Accuracy, 1e-9)
	assert.Equal(t, 3, report.Words)
	assert.InDelta(t, 6.0, report.WPM, 1e-9)
	assert.Equal(t, 30*time.Second, report.Duration)
	assert.Equal(t, model.CharResult{Char: 't', Correct: 1, Total: 2}, report.Chars[0])
}

func TestCalculateSortsByAccuracyThenChar(t *testing.T) {
	p := passage.New("aabbc")
	report := Calculate(Input{
		Passage:   p,
		Remaining: map[rune]int{'a': 1, 'b': 1, 'c': 1},
	})

	got := make([]rune, 0, len(report.Chars))
	for _, c := range report.Chars {
		got = append(got, c.Char)
	}
	assert.Equal(t, []rune{'a', 'b', 'c'}, got)
	assert.Equal(t, []string{"a: 50% (1/2)", "b: 50% (1/2)", "c: 100% (1/1)"}, report.CharLines())
}

func TestCalculateEmptyPassageFallback(t *testing.T) {
	report := Calculate(Input{Passage: passage.New(""), Remaining: map[rune]int{}})
	assert.Equal(t, 1.0, report.Accuracy)
	assert.Equal(t, 0.0, report.WPM)
	assert.Empty(t, report.Chars)
	assert.Equal(t, "Accuracy: 100% (0/0)", report.AccuracyLine())
}

func TestWordsPerMinuteZeroDuration(t *testing.T) {
	assert.Equal(t, 0.0, WordsPerMinute(5, 0))
	assert.Equal(t, 0.0, WordsPerMinute(5, -time.Second))
	assert.InDelta(t, 120.0, WordsPerMinute(2, time.Second), 1e-9)
}
