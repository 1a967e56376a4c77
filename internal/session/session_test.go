package session

import (
	"testing"
	"time"
)

func TestAppendTurnAssignsMonotonicIDs(t *testing.T) {
	s := newSession("s1", time.Now().UTC())
	first := s.AppendTurn(RoleAssistant, "welcome")
	second := s.AppendTurn(RoleUser, "hello")

	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("turn IDs = %d, %d, want 1, 2", first.ID, second.ID)
	}

	turns := s.Turns()
	if len(turns) != 2 {
		t.Fatalf("len(Turns()) = %d, want 2", len(turns))
	}
	if turns[0].Role != RoleAssistant || turns[1].Role != RoleUser {
		t.Fatalf("unexpected turn order: %+v", turns)
	}
}

func TestAppendUtteranceSeparatesWithSingleSpace(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		utterance string
		want      string
	}{
		{"into empty buffer", "", "bar", "bar"},
		{"after typed text", "foo", "bar", "foo bar"},
		{"two utterances", "someone stole", "my bike", "someone stole my bike"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newSession("s1", time.Now().UTC())
			s.SetInput(tt.existing)
			got := s.AppendUtterance(tt.utterance)
			if got != tt.want {
				t.Fatalf("AppendUtterance() buffer = %q, want %q", got, tt.want)
			}
			if s.Input() != tt.want {
				t.Fatalf("Input() = %q, want %q", s.Input(), tt.want)
			}
		})
	}
}

func TestBeginAnalysisRejectsEmptyBuffer(t *testing.T) {
	s := newSession("s1", time.Now().UTC())
	s.SetInput("   \n\t ")
	if _, ok := s.BeginAnalysis(); ok {
		t.Fatalf("BeginAnalysis() accepted whitespace-only buffer")
	}
	if s.Analyzing() {
		t.Fatalf("rejected submission must not mark the session busy")
	}
}

func TestBeginAnalysisSnapshotsAndClears(t *testing.T) {
	s := newSession("s1", time.Now().UTC())
	s.SetInput("  someone stole my bike  ")

	text, ok := s.BeginAnalysis()
	if !ok {
		t.Fatalf("BeginAnalysis() rejected a valid buffer")
	}
	if text != "someone stole my bike" {
		t.Fatalf("snapshot = %q, want trimmed text", text)
	}
	if s.Input() != "" {
		t.Fatalf("buffer = %q, want empty after submission", s.Input())
	}

	// A second submission while busy is a no-op even with new text.
	s.SetInput("another incident")
	if _, ok := s.BeginAnalysis(); ok {
		t.Fatalf("BeginAnalysis() accepted a concurrent submission")
	}

	s.EndAnalysis()
	if _, ok := s.BeginAnalysis(); !ok {
		t.Fatalf("BeginAnalysis() rejected after the busy flag was cleared")
	}
}

func TestReplaceSuggestionsIsNotAMerge(t *testing.T) {
	s := newSession("s1", time.Now().UTC())
	s.ReplaceSuggestions([]string{"a", "b"})
	s.ReplaceSuggestions([]string{"c"})

	got := s.Suggestions()
	if len(got) != 1 || got[0] != "c" {
		t.Fatalf("Suggestions() = %v, want [c]", got)
	}

	s.ReplaceSuggestions(nil)
	if len(s.Suggestions()) != 0 {
		t.Fatalf("empty replacement should clear the panel, got %v", s.Suggestions())
	}
}
