package analyzer

import (
	"context"
	"errors"
	"testing"
)

type scriptedStatusClient struct {
	health Health
	err    error
	calls  int
}

func (c *scriptedStatusClient) Analyze(context.Context, string) (Result, error) {
	return Result{}, errors.New("not used")
}

func (c *scriptedStatusClient) Status(context.Context) (Health, error) {
	c.calls++
	return c.health, c.err
}

func TestProbeStoresHealthOnSuccess(t *testing.T) {
	client := &scriptedStatusClient{health: Health{LLMEnabled: true, TotalSections: 57}}
	p := NewProbe()

	if err := p.Run(context.Background(), client); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	health, ok := p.Snapshot()
	if !ok {
		t.Fatalf("Snapshot() ok = false after successful probe")
	}
	if !health.LLMEnabled || health.TotalSections != 57 {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestProbeFailureLeavesHealthUnset(t *testing.T) {
	client := &scriptedStatusClient{err: errors.New("boom")}
	p := NewProbe()

	if err := p.Run(context.Background(), client); err == nil {
		t.Fatalf("Run() expected error")
	}
	if _, ok := p.Snapshot(); ok {
		t.Fatalf("Snapshot() ok = true after failed probe")
	}
	if client.calls != 1 {
		t.Fatalf("Status calls = %d, want exactly 1 (no retry)", client.calls)
	}
}
