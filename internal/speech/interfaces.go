package speech

import "context"

// State is the speech-input lifecycle phase.
type State string

const (
	StateUnavailable State = "unavailable"
	StateIdle        State = "idle"
	StateListening   State = "listening"
)

type CaptureEventType string

const (
	// CaptureEventResult carries one final recognized utterance. Interim
	// results are never delivered.
	CaptureEventResult CaptureEventType = "result"
	CaptureEventError  CaptureEventType = "error"
	CaptureEventEnded  CaptureEventType = "ended"
)

type CaptureEvent struct {
	Type   CaptureEventType
	Text   string
	Code   string
	Detail string
}

// CaptureSession is one active listening window.
type CaptureSession interface {
	// Stop cancels the capture. Any partial result is discarded; the
	// provider still delivers an ended event on the session channel.
	Stop() error
}

// CaptureProvider wraps a platform speech-recognition capability behind a
// start/stop/event contract: single utterance, final results only, fixed
// locale. The event channel is closed when the session terminates.
type CaptureProvider interface {
	StartCapture(ctx context.Context, language string) (CaptureSession, <-chan CaptureEvent, error)
}
