package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kausthubh/nyaya/internal/session"
	"github.com/kausthubh/nyaya/internal/speech"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeInputSet     MessageType = "input_set"
	TypeSubmit       MessageType = "submit"
	TypeVoiceControl MessageType = "voice_control"

	TypeTurn         MessageType = "turn"
	TypeTyping       MessageType = "typing"
	TypeSuggestions  MessageType = "suggestions"
	TypeInputState   MessageType = "input_state"
	TypeCaptureState MessageType = "capture_state"
	TypeNotice       MessageType = "notice"
	TypeErrorEvent   MessageType = "error_event"
)

const (
	VoiceActionStart = "start"
	VoiceActionStop  = "stop"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// InputSet replaces the input buffer with user-typed text.
type InputSet struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

// Submit triggers one analysis cycle on the current buffer.
type Submit struct {
	Type MessageType `json:"type"`
}

// VoiceControl starts or stops a voice capture window.
type VoiceControl struct {
	Type   MessageType `json:"type"`
	Action string      `json:"action"`
}

// TurnEvent carries one appended transcript entry, with the content both
// raw and rendered to display HTML.
type TurnEvent struct {
	Type MessageType  `json:"type"`
	ID   int64        `json:"id"`
	Role session.Role `json:"role"`
	Text string       `json:"content"`
	HTML string       `json:"html"`
}

// TypingEvent toggles the pending-analysis indicator.
type TypingEvent struct {
	Type   MessageType `json:"type"`
	Active bool        `json:"active"`
}

// SuggestionsEvent replaces the suggestion panel contents.
type SuggestionsEvent struct {
	Type  MessageType `json:"type"`
	Items []string    `json:"items"`
}

// InputStateEvent reflects the server-side buffer after a voice append or
// a submission clear.
type InputStateEvent struct {
	Type MessageType `json:"type"`
	Text string      `json:"text"`
}

type CaptureStateEvent struct {
	Type  MessageType  `json:"type"`
	State speech.State `json:"state"`
}

// Notice is a non-blocking user-facing message (e.g. voice unsupported).
type Notice struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code"`
	Detail string      `json:"detail"`
}

type ErrorEvent struct {
	Type   MessageType `json:"type"`
	Code   string      `json:"code"`
	Detail string      `json:"detail"`
}

// ParseClientMessage validates and decodes a client payload.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeInputSet:
		var msg InputSet
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case TypeSubmit:
		var msg Submit
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		return msg, nil
	case TypeVoiceControl:
		var msg VoiceControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.Action != VoiceActionStart && msg.Action != VoiceActionStop {
			return nil, fmt.Errorf("invalid voice_control action %q", msg.Action)
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}

// MessageTypeOf reports the protocol type of a decoded message.
func MessageTypeOf(v any) (MessageType, bool) {
	switch m := v.(type) {
	case InputSet:
		return m.Type, true
	case Submit:
		return m.Type, true
	case VoiceControl:
		return m.Type, true
	case TurnEvent:
		return m.Type, true
	case TypingEvent:
		return m.Type, true
	case SuggestionsEvent:
		return m.Type, true
	case InputStateEvent:
		return m.Type, true
	case CaptureStateEvent:
		return m.Type, true
	case Notice:
		return m.Type, true
	case ErrorEvent:
		return m.Type, true
	default:
		return "", false
	}
}
