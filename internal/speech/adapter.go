package speech

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	ErrUnsupported = errors.New("speech capture is not supported")
	ErrListening   = errors.New("speech capture already active")
)

// Adapter owns the capture lifecycle for one session. It normalizes
// availability detection, keeps the capture state machine and forwards each
// final recognized utterance to the result callback. It never submits
// anything on its own.
type Adapter struct {
	provider CaptureProvider
	language string
	onResult func(text string)
	onState  func(State)

	mu       sync.Mutex
	state    State
	active   CaptureSession
	starting bool
}

// NewAdapter builds an adapter. A nil provider means the capability is
// absent for the whole session; the state stays unavailable and Start
// reports ErrUnsupported.
func NewAdapter(provider CaptureProvider, language string, onResult func(string), onState func(State)) *Adapter {
	state := StateIdle
	if provider == nil {
		state = StateUnavailable
	}
	return &Adapter{
		provider: provider,
		language: language,
		onResult: onResult,
		onState:  onState,
		state:    state,
	}
}

// Supported reports whether a capture capability was detected. The answer
// is fixed for the lifetime of the adapter.
func (a *Adapter) Supported() bool {
	return a.provider != nil
}

func (a *Adapter) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Start begins one capture window. Only one may be active at a time.
func (a *Adapter) Start(ctx context.Context) error {
	if a.provider == nil {
		return ErrUnsupported
	}

	a.mu.Lock()
	if a.starting || a.state == StateListening {
		a.mu.Unlock()
		return ErrListening
	}
	// Claim the window before releasing the lock so a concurrent Start
	// cannot open a second capture while the provider call is in flight.
	a.starting = true
	a.mu.Unlock()

	sess, events, err := a.provider.StartCapture(ctx, a.language)

	a.mu.Lock()
	a.starting = false
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.active = sess
	changed := a.state != StateListening
	a.state = StateListening
	a.mu.Unlock()
	if changed {
		a.notify(StateListening)
	}
	go a.consume(events)
	return nil
}

// Stop cancels the active capture window, discarding any partial result.
// Stopping an idle adapter is a no-op.
func (a *Adapter) Stop() {
	a.mu.Lock()
	sess := a.active
	a.mu.Unlock()
	if sess != nil {
		_ = sess.Stop()
	}
}

func (a *Adapter) consume(events <-chan CaptureEvent) {
	for ev := range events {
		switch ev.Type {
		case CaptureEventResult:
			if ev.Text != "" && a.onResult != nil {
				a.onResult(ev.Text)
			}
			a.setIdle()
		case CaptureEventError:
			// Runtime capture errors are not surfaced as blocking
			// failures; the user simply retries.
			log.Printf("speech capture error: code=%s detail=%s", ev.Code, ev.Detail)
			a.setIdle()
		case CaptureEventEnded:
			a.setIdle()
		}
	}
	a.setIdle()
}

func (a *Adapter) setIdle() {
	a.mu.Lock()
	if a.state != StateListening {
		a.mu.Unlock()
		return
	}
	a.state = StateIdle
	a.active = nil
	a.mu.Unlock()
	a.notify(StateIdle)
}

func (a *Adapter) notify(state State) {
	if a.onState != nil {
		a.onState(state)
	}
}
