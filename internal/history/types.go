package history

import (
	"context"
	"time"
)

// ExchangeRecord stores one resolved analysis cycle: the submitted incident
// description and the assistant reply it produced.
type ExchangeRecord struct {
	ID              string    `json:"id"`
	SessionID       string    `json:"session_id"`
	UserInput       string    `json:"user_input"`
	AssistantOutput string    `json:"assistant_output"`
	Outcome         string    `json:"outcome"`
	CreatedAt       time.Time `json:"created_at"`
}

// Store persists and retrieves the conversation log.
type Store interface {
	SaveExchange(ctx context.Context, record ExchangeRecord) error
	RecentExchanges(ctx context.Context, sessionID string, limit int) ([]ExchangeRecord, error)
	Close() error
}
