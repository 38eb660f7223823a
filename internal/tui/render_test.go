package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/retype/internal/session"
)

func TestBuildStyledRunesRegions(t *testing.T) {
	target := []rune("abcd")
	runes := buildStyledRunes(target, session.Bounds{Good: 1, Typed: 2, End: 4})
	if len(runes) != 4 {
		t.Fatalf("expected 4 runes, got %d", len(runes))
	}
	if runes[0].s != goodStyle.Render("a") {
		t.Fatalf("expected good style for confirmed rune")
	}
	if runes[1].s != badStyle.Render("b") {
		t.Fatalf("expected bad style for overstruck rune")
	}
	if runes[2].s != cursorStyle.Render("c") {
		t.Fatalf("expected cursor style at typed position")
	}
	if runes[3].s != untypedStyle.Render("d") {
		t.Fatalf("expected untyped style after cursor")
	}
}

func TestBuildStyledRunesNoCursorWhenComplete(t *testing.T) {
	runes := buildStyledRunes([]rune("a"), session.Bounds{Good: 1, Typed: 1, End: 1})
	if runes[0].s != goodStyle.Render("a") {
		t.Fatalf("expected good style for completed rune")
	}
}

func TestBuildStyledRunesGlyphs(t *testing.T) {
	runes := buildStyledRunes([]rune("a \n\t"), session.Bounds{Good: 1, Typed: 2, End: 4})
	if runes[1].s != badStyle.Render(string(badSpace)) {
		t.Fatalf("expected dot for overstruck space")
	}
	if !runes[2].isNewline || runes[2].s != cursorStyle.Render(string(newlineGlyph)) {
		t.Fatalf("expected newline glyph at cursor")
	}
	if !runes[3].isSpace || runes[3].s != untypedStyle.Render(string(tabGlyph)) {
		t.Fatalf("expected tab glyph")
	}
}

func plainRunes(text string) []styledRune {
	runes := make([]styledRune, 0, len(text))
	for _, r := range text {
		runes = append(runes, styledRune{s: string(r), width: 1, isSpace: r == ' ', isNewline: r == '\n'})
	}
	return runes
}

func TestWrapStyledRunesAtSpaces(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two three"), 8)
	want := "one two \nthree"
	if got != want {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesLongWord(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	if got != "abc\ndef\ngh" {
		t.Fatalf("unexpected wrap: %q", got)
	}
}

func TestWrapStyledRunesKeepsNewlines(t *testing.T) {
	got := wrapStyledRunes(plainRunes("ab\ncd"), 10)
	if got != "ab\n\ncd" {
		t.Fatalf("unexpected wrap: %q", got)
	}
	if lines := strings.Split(got, "\n"); len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	got := wrapStyledRunes(plainRunes("one two"), 0)
	if got != "one two" {
		t.Fatalf("unexpected output: %q", got)
	}
}
