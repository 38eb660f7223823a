package session

// KeyKind classifies a key event for the session.
type KeyKind int

const (
	// KeyUnhandled is left to the host; the session does not consume it.
	KeyUnhandled KeyKind = iota
	// KeyIgnored is pure navigation; consumed without any state change.
	KeyIgnored
	// KeyBackspace erases one pending error.
	KeyBackspace
	// KeyContent carries a typed character.
	KeyContent
)

func (k KeyKind) String() string {
	switch k {
	case KeyIgnored:
		return "ignored"
	case KeyBackspace:
		return "backspace"
	case KeyContent:
		return "content"
	default:
		return "unhandled"
	}
}

// KeyEvent is a classified keystroke.
type KeyEvent struct {
	Kind KeyKind
	Char rune
}

// Content classifies a typed character. Carriage return becomes newline;
// control codes other than tab and newline are unhandled.
func Content(r rune) KeyEvent {
	switch {
	case r == '\r':
		r = '\n'
	case r == '\t' || r == '\n':
	case r < 32 || r == 127:
		return KeyEvent{Kind: KeyUnhandled, Char: r}
	}
	return KeyEvent{Kind: KeyContent, Char: r}
}

// Backspace returns a backspace event.
func Backspace() KeyEvent {
	return KeyEvent{Kind: KeyBackspace}
}

// Ignored returns a navigation event the session swallows.
func Ignored() KeyEvent {
	return KeyEvent{Kind: KeyIgnored}
}

// Unhandled returns an event the session leaves to the host.
func Unhandled() KeyEvent {
	return KeyEvent{Kind: KeyUnhandled}
}
