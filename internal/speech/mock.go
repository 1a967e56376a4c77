package speech

import (
	"context"
	"sync"
)

// MockProvider plays back scripted utterances, one per capture window. It
// stands in for a real platform capability during local development and
// tests.
type MockProvider struct {
	mu         sync.Mutex
	utterances []string
	next       int
}

func NewMockProvider(utterances ...string) *MockProvider {
	if len(utterances) == 0 {
		utterances = []string{"simulated voice input"}
	}
	return &MockProvider{utterances: utterances}
}

func (p *MockProvider) StartCapture(_ context.Context, _ string) (CaptureSession, <-chan CaptureEvent, error) {
	p.mu.Lock()
	text := p.utterances[p.next%len(p.utterances)]
	p.next++
	p.mu.Unlock()

	events := make(chan CaptureEvent, 2)
	s := &mockCaptureSession{events: events}
	s.deliver(text)
	return s, events, nil
}

type mockCaptureSession struct {
	mu      sync.Mutex
	events  chan CaptureEvent
	stopped bool
}

func (s *mockCaptureSession) deliver(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.events <- CaptureEvent{Type: CaptureEventResult, Text: text}
	s.events <- CaptureEvent{Type: CaptureEventEnded}
	close(s.events)
	s.stopped = true
}

func (s *mockCaptureSession) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.events <- CaptureEvent{Type: CaptureEventEnded}
	close(s.events)
	s.stopped = true
	return nil
}
