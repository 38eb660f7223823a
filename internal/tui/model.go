// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/passage"
	"github.com/verte-zerg/retype/internal/session"
	"github.com/verte-zerg/retype/internal/store"
)

const defaultContentWidth = 0.70

// Source names where a passage came from.
const (
	SourceDefault   = "default"
	SourceFile      = "file"
	SourceClipboard = "clipboard"
	SourcePaste     = "paste"
)

// Model implements the Bubble Tea typing UI. It owns exactly one session
// at a time; loading text or starting again replaces it.
type Model struct {
	config model.Config
	store  *store.Store
	keys   keyMap
	now    func() time.Time

	width  int
	height int

	session   *session.Session
	source    string
	completed bool

	report  model.Report
	results table.Model

	form      *huh.Form
	formText  string
	clipboard func() (*passage.Passage, error)

	notice string
}

// NewModel constructs a typing TUI model. st may be nil when history is off.
func NewModel(cfg model.Config, st *store.Store, p *passage.Passage, source string) *Model {
	m := &Model{
		config:    cfg,
		store:     st,
		keys:      newKeyMap(),
		now:       time.Now,
		clipboard: passage.FromClipboard,
	}
	m.load(p, source)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return m, nil
	case key.Matches(msg, m.keys.Clipboard):
		m.loadClipboard()
		return m, nil
	case key.Matches(msg, m.keys.PasteForm):
		return m.openForm()
	}
	if msg.Paste {
		m.load(passage.New(string(msg.Runes)), SourcePaste)
		return m, nil
	}
	if m.completed {
		return m.handleResultsKey(msg)
	}
	m.notice = ""
	for _, ev := range keyEvents(msg) {
		m.session.HandleKeystroke(ev)
	}
	if m.completed {
		m.finishSession()
	}
	return m, nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Leave):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Again):
		m.restart()
		return m, nil
	}
	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) openForm() (tea.Model, tea.Cmd) {
	m.formText = ""
	m.form = newPasteForm(&m.formText)
	return m, m.form.Init()
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Esc closes the form; the other quit keys still leave the app.
		if keyMsg.Type == tea.KeyEsc {
			m.form = nil
			m.notice = "Paste cancelled."
			return m, nil
		}
		if key.Matches(keyMsg, m.keys.Quit) {
			m.form = nil
			return m, tea.Quit
		}
	}
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.load(passage.New(m.formText), SourcePaste)
		return m, nil
	case huh.StateAborted:
		m.form = nil
		m.notice = "Paste cancelled."
		return m, nil
	}
	return m, cmd
}

func (m *Model) loadClipboard() {
	p, err := m.clipboard()
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.load(p, SourceClipboard)
}

// load replaces the current session with a fresh one over p.
func (m *Model) load(p *passage.Passage, source string) {
	m.source = source
	m.start(session.New(p, session.WithClock(m.now)))
}

func (m *Model) restart() {
	m.start(m.session.Restart())
}

func (m *Model) start(s *session.Session) {
	m.session = s
	m.completed = false
	m.report = model.Report{}
	s.OnComplete(func() { m.completed = true })
	if s.Phase() == session.PhaseComplete {
		m.completed = true
		m.finishSession()
	}
}

func (m *Model) finishSession() {
	report, err := m.session.Report()
	if err != nil {
		m.notice = err.Error()
		return
	}
	m.report = report
	m.results = newResultsTable(report)
	if m.store == nil || report.TotalChars == 0 {
		return
	}
	rec, chars := store.RecordFromReport(report, m.source)
	if _, err := m.store.InsertSession(context.Background(), rec, chars); err != nil {
		logErrf("failed to save session: %v\n", err)
		m.notice = "Could not save session to history."
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.form != nil {
		return m.place(m.form.View(), "")
	}
	if m.completed {
		return m.place(renderResults(m.report, m.results, renderHelp(m.keys.resultsHelp())), m.renderNotice())
	}
	target := m.session.Passage().Runes()
	styled := buildStyledRunes(target, m.session.Bounds())
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styled)
	}
	contentWidth := max(int(float64(m.width)*m.contentWidth()), 1)
	wrapped := wrapStyledRunes(styled, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	return m.place(content, m.renderFooter())
}

func (m *Model) place(content, footer string) string {
	if m.width == 0 || m.height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n" + footer
	}
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) contentWidth() float64 {
	if m.config.ContentWidth <= 0 || m.config.ContentWidth > 1 {
		return defaultContentWidth
	}
	return m.config.ContentWidth
}

func (m *Model) renderFooter() string {
	b := m.session.Bounds()
	progress := 100
	if b.End > 0 {
		progress = b.Good * 100 / b.End
	}
	elapsed := m.session.Elapsed(m.now()).Truncate(time.Second)
	segments := []string{
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("Errors %d", m.session.TotalErrors()),
		fmt.Sprintf("Pending %d", m.session.PendingErrors()),
		formatElapsed(elapsed),
		renderHelp(m.keys.typingHelp()),
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if notice := m.renderNotice(); notice != "" {
		footer = notice + "  " + footer
	}
	return footer
}

func (m *Model) renderNotice() string {
	if m.notice == "" {
		return ""
	}
	return noticeStyle.Render(m.notice)
}

func formatElapsed(d time.Duration) string {
	total := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
