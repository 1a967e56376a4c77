package session

import (
	"strings"
	"sync"
	"time"
)

// Session holds the mutable state of one chat: the append-only transcript,
// the in-progress incident description, the latest suggestion list and the
// single-in-flight analysis guard.
type Session struct {
	ID        string
	StartedAt time.Time

	mu             sync.Mutex
	status         Status
	lastActivityAt time.Time
	turns          []Turn
	nextTurnID     int64
	input          string
	suggestions    []string
	analyzing      bool
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:             id,
		StartedAt:      now,
		status:         StatusActive,
		lastActivityAt: now,
		nextTurnID:     1,
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Touch records activity so the janitor does not expire a live session.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivityAt = time.Now().UTC()
}

func (s *Session) end(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusEnded
	s.lastActivityAt = now
}

func (s *Session) expireIfInactive(now time.Time, timeout time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusActive {
		return false
	}
	if now.Sub(s.lastActivityAt) < timeout {
		return false
	}
	s.status = StatusEnded
	s.lastActivityAt = now
	return true
}

// AppendTurn adds one transcript entry and returns it. Turns are never
// edited or removed afterwards.
func (s *Session) AppendTurn(role Role, content string) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := Turn{ID: s.nextTurnID, Role: role, Content: content}
	s.nextTurnID++
	s.turns = append(s.turns, t)
	return t
}

// Turns returns a copy of the transcript in insertion order.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SetInput replaces the buffer with user-typed text.
func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

// AppendUtterance merges a final voice recognition result into the buffer.
// Existing typed text is preserved; a single space separates the two parts.
// It returns the resulting buffer content.
func (s *Session) AppendUtterance(text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.input != "" {
		s.input += " "
	}
	s.input += text
	return s.input
}

// BeginAnalysis atomically checks the submission guards and, when they pass,
// marks the session busy, snapshots the trimmed buffer and clears it.
// It returns ok=false when the trimmed buffer is empty or an analysis is
// already in flight; in that case nothing changes.
func (s *Session) BeginAnalysis() (text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analyzing {
		return "", false
	}
	text = strings.TrimSpace(s.input)
	if text == "" {
		return "", false
	}
	s.analyzing = true
	s.input = ""
	return text, true
}

// EndAnalysis clears the busy flag. Every BeginAnalysis that returned ok
// must be paired with exactly one EndAnalysis, regardless of outcome.
func (s *Session) EndAnalysis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzing = false
}

func (s *Session) Analyzing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzing
}

// ReplaceSuggestions swaps the whole suggestion list. Suggestions are never
// merged across analyses; an empty list clears the panel.
func (s *Session) ReplaceSuggestions(items []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = make([]string, len(items))
	copy(s.suggestions, items)
}

func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}
