package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/retype/internal/session"
)

type keyMap struct {
	Quit      key.Binding
	Restart   key.Binding
	Clipboard key.Binding
	PasteForm key.Binding
	Again     key.Binding
	Leave     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Restart:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "start again")),
		Clipboard: key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "clipboard")),
		PasteForm: key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "paste text")),
		Again:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start again")),
		Leave:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) typingHelp() []key.Binding {
	return []key.Binding{k.Restart, k.Clipboard, k.PasteForm, k.Quit}
}

func (k keyMap) resultsHelp() []key.Binding {
	return []key.Binding{k.Again, k.Clipboard, k.PasteForm, k.Leave}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// keyEvents classifies a terminal key press into session events, one per
// character, in the order they were typed.
func keyEvents(msg tea.KeyMsg) []session.KeyEvent {
	switch msg.Type {
	case tea.KeyLeft, tea.KeyRight, tea.KeyUp, tea.KeyDown, tea.KeyDelete:
		return []session.KeyEvent{session.Ignored()}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []session.KeyEvent{session.Backspace()}
	case tea.KeySpace:
		return []session.KeyEvent{session.Content(' ')}
	case tea.KeyTab:
		return []session.KeyEvent{session.Content('\t')}
	case tea.KeyEnter:
		return []session.KeyEvent{session.Content('\r')}
	case tea.KeyCtrlJ:
		return []session.KeyEvent{session.Content('\n')}
	case tea.KeyRunes:
		if msg.Alt {
			return []session.KeyEvent{session.Unhandled()}
		}
		events := make([]session.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, session.Content(r))
		}
		return events
	default:
		return []session.KeyEvent{session.Unhandled()}
	}
}
