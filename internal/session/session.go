// Package session implements the keystroke-matching state machine of a
// typing drill.
//
// A session advances a confirmed-correct cursor only while no errors are
// pending. Mistyped characters overstrike forward and must be erased with
// backspace before progress resumes. Each run of mistakes at a position is
// charged once against overall and per-character accuracy.
package session

import (
	"errors"
	"time"

	"github.com/verte-zerg/retype/internal/model"
	"github.com/verte-zerg/retype/internal/passage"
	"github.com/verte-zerg/retype/internal/stats"
)

// ErrNotComplete is returned when a report is requested before completion.
var ErrNotComplete = errors.New("session: typing is not complete")

// Phase is the lifecycle state of a session.
type Phase int

// Phases advance Idle -> InProgress -> Complete and never go back.
const (
	PhaseIdle Phase = iota
	PhaseInProgress
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInProgress:
		return "in progress"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Bounds are the render boundaries: [0,Good) is confirmed correct,
// [Good,Typed) is overstruck and [Typed,End) is untyped.
type Bounds struct {
	Good  int
	Typed int
	End   int
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the wall clock used for timing.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the typing state for one passage. It is not safe for
// concurrent use.
type Session struct {
	passage *passage.Passage
	now     func() time.Time

	goodPos       int
	typedPos      int
	pendingErrors int
	errorEvents   int
	lastClean     bool
	remaining     map[rune]int

	phase      Phase
	startedAt  time.Time
	finishedAt time.Time

	observers []func()
	notified  bool
}

// New starts a session over p. A session over an empty passage is
// complete from the start.
func New(p *passage.Passage, opts ...Option) *Session {
	s := &Session{
		passage:   p,
		now:       time.Now,
		lastClean: true,
		remaining: p.Totals(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if p.Empty() {
		s.phase = PhaseComplete
		s.notified = true
	}
	return s
}

// Restart returns a fresh session over the same passage and clock.
// Observers are not carried over.
func (s *Session) Restart() *Session {
	return New(s.passage, WithClock(s.now))
}

// OnComplete registers fn to run synchronously when the passage is finished.
func (s *Session) OnComplete(fn func()) {
	s.observers = append(s.observers, fn)
}

// HandleKeystroke applies ev and reports whether the session consumed it.
func (s *Session) HandleKeystroke(ev KeyEvent) bool {
	switch ev.Kind {
	case KeyIgnored:
		return true
	case KeyBackspace:
		if s.phase == PhaseComplete {
			return false
		}
		s.backspace()
		return true
	case KeyContent:
		if s.phase == PhaseComplete {
			return false
		}
		s.content(ev.Char)
		return true
	default:
		return false
	}
}

func (s *Session) backspace() {
	if s.pendingErrors == 0 {
		return
	}
	s.pendingErrors--
	s.typedPos--
}

func (s *Session) content(typed rune) {
	if s.phase == PhaseIdle {
		s.phase = PhaseInProgress
		s.startedAt = s.now()
	}
	// Overstrike cannot run past the end of the passage.
	if s.typedPos >= s.passage.Len() {
		return
	}
	expected := s.passage.At(s.typedPos)
	if expected == typed && s.pendingErrors == 0 {
		s.lastClean = true
		s.goodPos++
		s.typedPos++
		if s.goodPos == s.passage.Len() {
			s.complete()
		}
		return
	}
	if s.lastClean {
		s.lastClean = false
		if s.remaining[expected] > 0 {
			s.remaining[expected]--
		}
		s.errorEvents++
	}
	s.typedPos++
	s.pendingErrors++
}

func (s *Session) complete() {
	s.phase = PhaseComplete
	s.finishedAt = s.now()
	if s.notified {
		return
	}
	s.notified = true
	for _, fn := range s.observers {
		fn()
	}
}

// Bounds returns the current render boundaries.
func (s *Session) Bounds() Bounds {
	return Bounds{Good: s.goodPos, Typed: s.typedPos, End: s.passage.Len()}
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase {
	return s.phase
}

// Passage returns the reference text.
func (s *Session) Passage() *passage.Passage {
	return s.passage
}

// PendingErrors returns the number of overstruck keystrokes not yet erased.
func (s *Session) PendingErrors() int {
	return s.pendingErrors
}

// TotalErrors returns the number of charged mistakes.
func (s *Session) TotalErrors() int {
	return s.errorEvents
}

// Remaining returns how many occurrences of r are still counted as correct.
func (s *Session) Remaining(r rune) int {
	return s.remaining[r]
}

// StartedAt returns when the first character was typed.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// FinishedAt returns when the passage was completed.
func (s *Session) FinishedAt() time.Time {
	return s.finishedAt
}

// Elapsed returns typing time so far, measured against now while running.
func (s *Session) Elapsed(now time.Time) time.Duration {
	switch s.phase {
	case PhaseInProgress:
		return now.Sub(s.startedAt)
	case PhaseComplete:
		return s.finishedAt.Sub(s.startedAt)
	default:
		return 0
	}
}

// Report returns the results of a completed session.
func (s *Session) Report() (model.Report, error) {
	if s.phase != PhaseComplete {
		return model.Report{}, ErrNotComplete
	}
	remaining := make(map[rune]int, len(s.remaining))
	for r, n := range s.remaining {
		remaining[r] = n
	}
	return stats.Calculate(stats.Input{
		Passage:     s.passage,
		Remaining:   remaining,
		ErrorEvents: s.errorEvents,
		StartedAt:   s.startedAt,
		FinishedAt:  s.finishedAt,
	}), nil
}
