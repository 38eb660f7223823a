package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCharResultString(t *testing.T) {
	tests := []struct {
		name string
		in   CharResult
		want string
	}{
		{name: "letter", in: CharResult{Char: 'a', Correct: 1, Total: 2}, want: "a: 50% (1/2)"},
		{name: "space", in: CharResult{Char: ' ', Correct: 3, Total: 3}, want: "SPACE: 100% (3/3)"},
		{name: "newline", in: CharResult{Char: '\n', Correct: 0, Total: 1}, want: "RETURN: 0% (0/1)"},
		{name: "tab", in: CharResult{Char: '\t', Correct: 2, Total: 3}, want: "TAB: 67% (2/3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.String())
		})
	}
}

func TestReportLines(t *testing.T) {
	r := Report{Accuracy: 0.5, CorrectChars: 1, TotalChars: 2, WPM: 6}
	assert.Equal(t, "Accuracy: 50% (1/2)", r.AccuracyLine())
	assert.Equal(t, "Words per minute: 6", r.WPMLine())

	r.WPM = 42.1234
	assert.Equal(t, "Words per minute: 42.1", r.WPMLine())
}
