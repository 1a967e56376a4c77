package analyzer

import (
	"context"
	"fmt"
)

// Request is the payload sent to the analyze endpoint.
type Request struct {
	Description string `json:"description"`
}

// Result is a successful classification: a rendered summary message plus
// follow-up suggestions (possibly empty).
type Result struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Health mirrors the ml_enhancement block of the status endpoint. The values
// are passed through for display only.
type Health struct {
	LLMEnabled            bool `json:"llm_enabled"`
	SemanticSearchEnabled bool `json:"semantic_search_enabled"`
	GeminiConfigured      bool `json:"gemini_configured"`
	TotalSections         int  `json:"total_sections"`
}

// Client is the contract with the remote legal-analysis service.
type Client interface {
	Analyze(ctx context.Context, description string) (Result, error)
	Status(ctx context.Context) (Health, error)
}

// StatusError reports that the service responded with a non-success status.
// Any other error from Analyze means the request never completed (transport
// failure); callers treat the two classes differently.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("analyze status %d", e.Code)
	}
	return fmt.Sprintf("analyze status %d: %s", e.Code, e.Reason)
}
