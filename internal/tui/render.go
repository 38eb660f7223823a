package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/retype/internal/session"
)

var (
	goodStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#2E7D32"))
	badStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#C62828"))
	untypedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle  = untypedStyle.Underline(true)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

const (
	newlineGlyph = '↵'
	tabGlyph     = '→'
	badSpace     = '·'
)

type styledRune struct {
	s         string
	width     int
	isSpace   bool
	isNewline bool
}

// buildStyledRunes maps the passage onto the confirmed, overstruck and
// untyped regions given by b.
func buildStyledRunes(target []rune, b session.Bounds) []styledRune {
	out := make([]styledRune, 0, len(target))
	for i, r := range target {
		style := untypedStyle
		switch {
		case i < b.Good:
			style = goodStyle
		case i < b.Typed:
			style = badStyle
		case i == b.Typed:
			style = cursorStyle
		}
		displayed := r
		switch {
		case r == '\n':
			displayed = newlineGlyph
		case r == '\t':
			displayed = tabGlyph
		case r == ' ' && i >= b.Good && i < b.Typed:
			displayed = badSpace
		}
		out = append(out, styledRune{
			s:         style.Render(string(displayed)),
			width:     runewidth.RuneWidth(displayed),
			isSpace:   r == ' ' || r == '\t',
			isNewline: r == '\n',
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines at passage newlines and, when a line would
// exceed width, at the last space.
func wrapStyledRunes(runes []styledRune, width int) string {
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	flush := func(items []styledRune) {
		out.WriteString(renderStyledRunes(items))
		out.WriteRune('\n')
	}

	for i := 0; i < len(runes); {
		item := runes[i]
		if width > 0 && lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				flush(line[:lastSpaceIdx+1])
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
			} else {
				flush(line)
				line = line[:0]
			}
			lineWidth = lineWidthOf(line)
			lastSpaceIdx = lastSpaceIndex(line)
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		i++
		if item.isNewline {
			flush(line)
			line = line[:0]
			lineWidth = 0
			lastSpaceIdx = -1
			continue
		}
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
