// Package stats computes session results and history summaries.
package stats

import (
	"sort"
	"time"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/passage"
)

// Input holds the final counters of a completed session.
type Input struct {
	Passage     *passage.Passage
	Remaining   map[rune]int
	ErrorEvents int
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Calculate derives the report for a completed session.
func Calculate(in Input) model.Report {
	total := in.Passage.Len()
	correct := total - in.ErrorEvents
	if correct < 0 {
		correct = 0
	}
	words := in.Passage.WordCount()
	duration := in.FinishedAt.Sub(in.StartedAt)
	if duration < 0 {
		duration = 0
	}

	accuracy := 1.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	return model.Report{
		Accuracy:     accuracy,
		CorrectChars: correct,
		TotalChars:   total,
		ErrorEvents:  in.ErrorEvents,
		Words:        words,
		WPM:          WordsPerMinute(words, duration),
		StartedAt:    in.StartedAt,
		FinishedAt:   in.FinishedAt,
		Duration:     duration,
		Chars:        charResults(in.Passage, in.Remaining),
	}
}

// WordsPerMinute returns words*60/seconds, or 0 for a non-positive duration.
func WordsPerMinute(words int, d time.Duration) float64 {
	seconds := d.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(words) * 60 / seconds
}

func charResults(p *passage.Passage, remaining map[rune]int) []model.CharResult {
	chars := p.Chars()
	results := make([]model.CharResult, 0, len(chars))
	for _, ch := range chars {
		results = append(results, model.CharResult{
			Char:    ch,
			Correct: remaining[ch],
			Total:   p.Total(ch),
		})
	}
	// Lowest accuracy first; ties by character.
	sort.SliceStable(results, func(i, j int) bool {
		ai := results[i].Accuracy()
		aj := results[j].Accuracy()
		if ai == aj {
			return results[i].Char < results[j].Char
		}
		return ai < aj
	})
	return results
}
