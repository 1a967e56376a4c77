package protocol

import (
	"errors"
	"testing"
)

func TestParseClientMessageInputSet(t *testing.T) {
	msg, err := ParseClientMessage([]byte(`{"type":"input_set","text":"someone stole my bike"}`))
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}
	set, ok := msg.(InputSet)
	if !ok {
		t.Fatalf("message type = %T, want InputSet", msg)
	}
	if set.Text != "someone stole my bike" {
		t.Fatalf("Text = %q", set.Text)
	}
}

func TestParseClientMessageSubmit(t *testing.T) {
	msg, err := ParseClientMessage([]byte(`{"type":"submit"}`))
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}
	if _, ok := msg.(Submit); !ok {
		t.Fatalf("message type = %T, want Submit", msg)
	}
}

func TestParseClientMessageVoiceControl(t *testing.T) {
	msg, err := ParseClientMessage([]byte(`{"type":"voice_control","action":"start"}`))
	if err != nil {
		t.Fatalf("ParseClientMessage() error = %v", err)
	}
	vc, ok := msg.(VoiceControl)
	if !ok {
		t.Fatalf("message type = %T, want VoiceControl", msg)
	}
	if vc.Action != VoiceActionStart {
		t.Fatalf("Action = %q, want %q", vc.Action, VoiceActionStart)
	}
}

func TestParseClientMessageRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"unknown type", `{"type":"telepathy"}`},
		{"bad voice action", `{"type":"voice_control","action":"hum"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseClientMessage([]byte(tt.raw)); err == nil {
				t.Fatalf("ParseClientMessage(%q) expected error", tt.raw)
			}
		})
	}

	_, err := ParseClientMessage([]byte(`{"type":"telepathy"}`))
	if !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("unknown type error = %v, want ErrUnsupportedType", err)
	}
}
