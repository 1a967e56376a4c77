package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/kausthubh/nyaya/internal/analyzer"
	"github.com/kausthubh/nyaya/internal/history"
	"github.com/kausthubh/nyaya/internal/observability"
	"github.com/kausthubh/nyaya/internal/session"
)

// Outcome labels how one submission cycle resolved.
type Outcome string

const (
	OutcomeSuccess        Outcome = "success"
	OutcomeAppError       Outcome = "app_error"
	OutcomeTransportError Outcome = "transport_error"
)

// CycleResult describes the transcript effects of one accepted submission.
type CycleResult struct {
	Accepted            bool
	Outcome             Outcome
	UserTurn            session.Turn
	AssistantTurn       session.Turn
	SuggestionsReplaced bool
	Suggestions         []string
}

// Coordinator orchestrates submission cycles: it freezes the input buffer
// into a user turn, invokes the analysis contract and appends exactly one
// assistant turn per cycle, success or failure.
type Coordinator struct {
	sessions *session.Manager
	client   analyzer.Client
	records  history.Store
	metrics  *observability.Metrics
}

func NewCoordinator(sessions *session.Manager, client analyzer.Client, records history.Store, metrics *observability.Metrics) *Coordinator {
	return &Coordinator{
		sessions: sessions,
		client:   client,
		records:  records,
		metrics:  metrics,
	}
}

// StartSession creates a session whose transcript is pre-seeded with the
// fixed assistant welcome turn.
func (c *Coordinator) StartSession() *session.Session {
	sess := c.sessions.Create()
	sess.AppendTurn(session.RoleAssistant, WelcomeMessage)
	return sess
}

// Submit runs one full submission cycle against the given session. An empty
// trimmed buffer or an in-flight request makes it a silent no-op
// (Accepted=false, no turns created). The analyzer call is the only
// suspension point; whatever the outcome, the busy flag is cleared and
// exactly one assistant turn is appended. onUserTurn, when non-nil, fires
// right after the user turn is appended so callers can render it before
// the analysis resolves.
func (c *Coordinator) Submit(ctx context.Context, sess *session.Session, onUserTurn func(session.Turn)) CycleResult {
	text, ok := sess.BeginAnalysis()
	if !ok {
		c.metrics.AnalysisRequests.WithLabelValues("rejected").Inc()
		return CycleResult{}
	}
	defer sess.EndAnalysis()

	res := CycleResult{Accepted: true}
	res.UserTurn = sess.AppendTurn(session.RoleUser, text)
	if onUserTurn != nil {
		onUserTurn(res.UserTurn)
	}

	started := time.Now()
	analysis, err := c.client.Analyze(ctx, text)
	c.metrics.ObserveAnalysisLatency(time.Since(started))

	var statusErr *analyzer.StatusError
	switch {
	case err == nil:
		res.Outcome = OutcomeSuccess
		res.AssistantTurn = sess.AppendTurn(session.RoleAssistant, analysis.Message)
		sess.ReplaceSuggestions(analysis.Suggestions)
		res.SuggestionsReplaced = true
	case errors.As(err, &statusErr):
		res.Outcome = OutcomeAppError
		reason := statusErr.Reason
		if reason == "" {
			reason = GenericFailureReason
		}
		res.AssistantTurn = sess.AppendTurn(session.RoleAssistant, fmt.Sprintf("❌ Error: %s", reason))
	default:
		res.Outcome = OutcomeTransportError
		res.AssistantTurn = sess.AppendTurn(session.RoleAssistant, ConnectivityErrorMessage)
	}

	res.Suggestions = sess.Suggestions()
	c.metrics.AnalysisRequests.WithLabelValues(string(res.Outcome)).Inc()
	c.recordExchange(sess.ID, text, res.AssistantTurn.Content, res.Outcome)
	return res
}

// recordExchange persists the cycle to the conversation log. Failures are
// logged and never interrupt the session.
func (c *Coordinator) recordExchange(sessionID, userInput, assistantOutput string, outcome Outcome) {
	if c.records == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := c.records.SaveExchange(ctx, history.ExchangeRecord{
		SessionID:       sessionID,
		UserInput:       userInput,
		AssistantOutput: assistantOutput,
		Outcome:         string(outcome),
	})
	if err != nil {
		log.Printf("conversation log write failed: %v", err)
	}
}
