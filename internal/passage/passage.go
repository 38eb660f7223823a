// Package passage holds the reference text a typing session is matched against.
package passage

import (
	"sort"
	"strings"
)

// Passage is an immutable reference text with a per-character frequency table.
type Passage struct {
	text   string
	runes  []rune
	totals map[rune]int
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

const byteOrderMark = "\ufeff"

// New builds a passage from text. Only characters a key can produce are
// kept: a leading byte-order mark is dropped, line endings become "\n"
// (keystroke carriage returns arrive as newlines) and other control
// characters become spaces.
func New(text string) *Passage {
	text = strings.TrimPrefix(text, byteOrderMark)
	text = lineEndings.Replace(text)
	text = strings.Map(typeable, text)
	runes := []rune(text)
	totals := make(map[rune]int)
	for _, r := range runes {
		totals[r]++
	}
	return &Passage{text: text, runes: runes, totals: totals}
}

func typeable(r rune) rune {
	switch {
	case r == '\n' || r == '\t':
		return r
	case r < 32 || r == 127:
		return ' '
	default:
		return r
	}
}

// Text returns the normalized passage text.
func (p *Passage) Text() string {
	return p.text
}

// Len returns the passage length in characters.
func (p *Passage) Len() int {
	return len(p.runes)
}

// At returns the character at offset i.
func (p *Passage) At(i int) rune {
	return p.runes[i]
}

// Runes returns a copy of the passage characters.
func (p *Passage) Runes() []rune {
	out := make([]rune, len(p.runes))
	copy(out, p.runes)
	return out
}

// Total returns how many times r occurs in the passage.
func (p *Passage) Total(r rune) int {
	return p.totals[r]
}

// Totals returns a copy of the frequency table.
func (p *Passage) Totals() map[rune]int {
	out := make(map[rune]int, len(p.totals))
	for r, n := range p.totals {
		out[r] = n
	}
	return out
}

// Chars returns the distinct characters of the passage in ascending order.
func (p *Passage) Chars() []rune {
	chars := make([]rune, 0, len(p.totals))
	for r := range p.totals {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// WordCount counts whitespace-separated words.
func (p *Passage) WordCount() int {
	return len(strings.Fields(p.text))
}

// Empty reports whether there is nothing to type.
func (p *Passage) Empty() bool {
	return len(p.runes) == 0
}
