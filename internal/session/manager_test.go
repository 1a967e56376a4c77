package session

import (
	"context"
	"testing"
	"time"
)

func TestManagerCreateGetEnd(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create()
	if s.ID == "" {
		t.Fatalf("session ID should not be empty")
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status() != StatusActive {
		t.Fatalf("Status() = %q, want %q", got.Status(), StatusActive)
	}

	ended, err := m.End(s.ID)
	if err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if ended.Status() != StatusEnded {
		t.Fatalf("ended status = %q, want %q", ended.Status(), StatusEnded)
	}
}

func TestManagerGetUnknownSession(t *testing.T) {
	m := NewManager(time.Minute)
	if _, err := m.Get("nope"); err != ErrNotFound {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestManagerJanitorExpiresInactive(t *testing.T) {
	m := NewManager(30 * time.Millisecond)
	s := m.Create()

	expired := make(chan string, 1)
	m.SetExpireHook(func(es *Session) { expired <- es.ID })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartJanitor(ctx, 10*time.Millisecond)

	select {
	case id := <-expired:
		if id != s.ID {
			t.Fatalf("expired session = %q, want %q", id, s.ID)
		}
	case <-time.After(time.Second):
		t.Fatalf("janitor did not expire the inactive session")
	}

	if s.Status() != StatusEnded {
		t.Fatalf("Status() = %q, want %q", s.Status(), StatusEnded)
	}
	// The transcript is reclaimed, not just flagged: the session is gone
	// from the map by the time the hook fires.
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("Get() after expiry error = %v, want ErrNotFound", err)
	}
}

func TestManagerReapsEndedSessions(t *testing.T) {
	m := NewManager(time.Minute)
	s := m.Create()
	s.AppendTurn(RoleUser, "something happened")

	if _, err := m.End(s.ID); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	// An ended session is still resolvable until a janitor pass runs.
	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get() after End error = %v", err)
	}
	if got.Status() != StatusEnded {
		t.Fatalf("Status() = %q, want %q", got.Status(), StatusEnded)
	}

	m.expireInactive()
	if _, err := m.Get(s.ID); err != ErrNotFound {
		t.Fatalf("Get() after janitor pass error = %v, want ErrNotFound", err)
	}
}

func TestManagerJanitorKeepsTouchedSessions(t *testing.T) {
	m := NewManager(50 * time.Millisecond)
	s := m.Create()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartJanitor(ctx, 10*time.Millisecond)

	for i := 0; i < 5; i++ {
		time.Sleep(20 * time.Millisecond)
		s.Touch()
	}
	if s.Status() != StatusActive {
		t.Fatalf("touched session expired, status = %q", s.Status())
	}
}
