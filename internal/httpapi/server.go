package httpapi

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/kausthubh/nyaya/internal/analyzer"
	"github.com/kausthubh/nyaya/internal/chat"
	"github.com/kausthubh/nyaya/internal/config"
	"github.com/kausthubh/nyaya/internal/history"
	"github.com/kausthubh/nyaya/internal/markup"
	"github.com/kausthubh/nyaya/internal/observability"
	"github.com/kausthubh/nyaya/internal/session"
	"github.com/kausthubh/nyaya/internal/speech"
)

type Server struct {
	cfg         config.Config
	sessions    *session.Manager
	coordinator *chat.Coordinator
	capture     speech.CaptureProvider
	probe       *analyzer.Probe
	records     history.Store
	metrics     *observability.Metrics
	upgrader    websocket.Upgrader
	static      http.Handler
}

func New(
	cfg config.Config,
	sessions *session.Manager,
	coordinator *chat.Coordinator,
	capture speech.CaptureProvider,
	probe *analyzer.Probe,
	records history.Store,
	metrics *observability.Metrics,
) *Server {
	return &Server{
		cfg:         cfg,
		sessions:    sessions,
		coordinator: coordinator,
		capture:     capture,
		probe:       probe,
		records:     records,
		metrics:     metrics,
		static:      newStaticHandler(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Only allow browser websocket connections from the same
				// origin unless explicitly opened up, so other websites
				// cannot drive a user's chat session.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Get("/ui", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusTemporaryRedirect)
	})
	r.Handle("/ui/*", http.StripPrefix("/ui/", s.static))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/chat/session", s.handleCreateSession)
	r.Post("/v1/chat/session/{id}/end", s.handleEndSession)
	r.Get("/v1/chat/session/ws", s.handleSessionWS)
	r.Get("/v1/chat/session/{id}/transcript", s.handleTranscript)
	r.Get("/v1/chat/session/{id}/history", s.handleHistory)
	r.Get("/v1/analysis/health", s.handleAnalysisHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
	})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":          "ready",
		"active_sessions": s.sessions.ActiveCount(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.coordinator.StartSession()
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("created").Inc()

	respondJSON(w, http.StatusCreated, session.CreateResponse{
		SessionID:       sess.ID,
		Status:          sess.Status(),
		StartedAt:       sess.StartedAt,
		InactivityTTLMS: s.cfg.SessionInactivityTimeout.Milliseconds(),
		Turns:           sess.Turns(),
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}

	sess, err := s.sessions.End(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("ended").Inc()
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"status":     sess.Status(),
	})
}

type transcriptTurn struct {
	ID      int64        `json:"id"`
	Role    session.Role `json:"role"`
	Content string       `json:"content"`
	HTML    string       `json:"html"`
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	turns := sess.Turns()
	out := make([]transcriptTurn, 0, len(turns))
	for _, t := range turns {
		out = append(out, transcriptTurn{
			ID:      t.ID,
			Role:    t.Role,
			Content: t.Content,
			HTML:    markup.Render(t.Content),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"session_id":  sess.ID,
		"turns":       out,
		"suggestions": sess.Suggestions(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	if s.records == nil {
		respondJSON(w, http.StatusOK, map[string]any{"exchanges": []history.ExchangeRecord{}})
		return
	}

	exchanges, err := s.records.RecentExchanges(r.Context(), sess.ID, 50)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "history_unavailable", err.Error())
		return
	}
	if exchanges == nil {
		exchanges = []history.ExchangeRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"exchanges": exchanges})
}

func (s *Server) handleAnalysisHealth(w http.ResponseWriter, _ *http.Request) {
	health, ok := s.probe.Snapshot()
	if !ok {
		respondJSON(w, http.StatusOK, map[string]any{"available": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"available":      true,
		"ml_enhancement": health,
	})
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return nil, false
	}
	sess, err := s.sessions.Get(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return nil, false
	}
	return sess, true
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, errorResponse{Error: message, Code: code})
}
