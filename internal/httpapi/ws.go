package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kausthubh/nyaya/internal/chat"
	"github.com/kausthubh/nyaya/internal/markup"
	"github.com/kausthubh/nyaya/internal/protocol"
	"github.com/kausthubh/nyaya/internal/session"
	"github.com/kausthubh/nyaya/internal/speech"
)

func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	if sess.Status() != session.StatusActive {
		respondError(w, http.StatusConflict, "session_ended", "session is no longer active")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.metrics.SessionEvents.WithLabelValues("ws_connected").Inc()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbound := make(chan any, 256)
	send := func(msg any) {
		select {
		case outbound <- msg:
			if t, ok := protocol.MessageTypeOf(msg); ok {
				s.metrics.WSMessages.WithLabelValues("outbound", string(t)).Inc()
			}
		default:
			// Keep websocket writes single-threaded; drop if the outbound
			// queue is saturated.
			s.metrics.WSMessages.WithLabelValues("outbound", "drop_full").Inc()
		}
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-outbound:
				_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
				if err := conn.WriteJSON(msg); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	capture := speech.NewAdapter(s.capture, s.cfg.SpeechLanguage,
		func(text string) {
			buffer := sess.AppendUtterance(text)
			s.metrics.CaptureEvents.WithLabelValues("result").Inc()
			send(protocol.InputStateEvent{Type: protocol.TypeInputState, Text: buffer})
		},
		func(state speech.State) {
			s.metrics.CaptureEvents.WithLabelValues(string(state)).Inc()
			send(protocol.CaptureStateEvent{Type: protocol.TypeCaptureState, State: state})
		},
	)
	defer capture.Stop()

	send(protocol.CaptureStateEvent{Type: protocol.TypeCaptureState, State: capture.State()})
	send(protocol.InputStateEvent{Type: protocol.TypeInputState, Text: sess.Input()})

	conn.SetReadLimit(1 << 20)
	_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(120 * time.Second))
		return nil
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		parsed, err := protocol.ParseClientMessage(data)
		if err != nil {
			send(protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "invalid_client_message",
				Detail: err.Error(),
			})
			continue
		}

		if t, ok := protocol.MessageTypeOf(parsed); ok {
			s.metrics.WSMessages.WithLabelValues("inbound", string(t)).Inc()
		}
		sess.Touch()

		switch msg := parsed.(type) {
		case protocol.InputSet:
			sess.SetInput(msg.Text)
		case protocol.Submit:
			s.runSubmitCycle(ctx, sess, send)
		case protocol.VoiceControl:
			s.handleVoiceControl(ctx, sess, capture, msg, send)
		}
	}

	cancel()
	capture.Stop()
	<-writerDone
	s.metrics.SessionEvents.WithLabelValues("ws_disconnected").Inc()
}

// runSubmitCycle drives one coordinator cycle and mirrors its transcript
// effects onto the wire. The whole cycle runs on the read loop goroutine,
// so a second submit cannot even be read until this one resolves; the
// coordinator's busy flag still guards programmatic callers.
func (s *Server) runSubmitCycle(ctx context.Context, sess *session.Session, send func(any)) {
	res := s.coordinator.Submit(ctx, sess, func(userTurn session.Turn) {
		send(turnEvent(userTurn))
		send(protocol.InputStateEvent{Type: protocol.TypeInputState, Text: ""})
		send(protocol.TypingEvent{Type: protocol.TypeTyping, Active: true})
	})
	if !res.Accepted {
		// Empty buffer or a request already in flight: silently rejected,
		// no turns created.
		return
	}

	send(protocol.TypingEvent{Type: protocol.TypeTyping, Active: false})
	send(turnEvent(res.AssistantTurn))
	if res.SuggestionsReplaced {
		send(protocol.SuggestionsEvent{Type: protocol.TypeSuggestions, Items: res.Suggestions})
	}
}

func (s *Server) handleVoiceControl(ctx context.Context, sess *session.Session, capture *speech.Adapter, msg protocol.VoiceControl, send func(any)) {
	switch msg.Action {
	case protocol.VoiceActionStart:
		if sess.Analyzing() {
			send(protocol.Notice{
				Type:   protocol.TypeNotice,
				Code:   "capture_unavailable",
				Detail: "Voice capture is unavailable while an analysis is in progress.",
			})
			return
		}
		switch err := capture.Start(ctx); {
		case errors.Is(err, speech.ErrUnsupported):
			send(protocol.Notice{
				Type:   protocol.TypeNotice,
				Code:   "voice_unsupported",
				Detail: chat.VoiceUnsupportedMessage,
			})
		case errors.Is(err, speech.ErrListening):
			// Already capturing; the control should be disabled, ignore.
		case err != nil:
			send(protocol.ErrorEvent{
				Type:   protocol.TypeErrorEvent,
				Code:   "capture_start_failed",
				Detail: err.Error(),
			})
		}
	case protocol.VoiceActionStop:
		capture.Stop()
	}
}

func turnEvent(t session.Turn) protocol.TurnEvent {
	return protocol.TurnEvent{
		Type: protocol.TypeTurn,
		ID:   t.ID,
		Role: t.Role,
		Text: t.Content,
		HTML: markup.Render(t.Content),
	}
}
