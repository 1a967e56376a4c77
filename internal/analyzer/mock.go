package analyzer

import (
	"context"
	"fmt"
	"strings"
)

// MockClient provides deterministic local replies when no analysis service
// is configured.
type MockClient struct{}

func NewMockClient() *MockClient { return &MockClient{} }

func (c *MockClient) Analyze(ctx context.Context, description string) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	desc := strings.TrimSpace(description)
	message := fmt.Sprintf(
		"Based on your description, this incident appears to fall under **Section 378 - Theft**.\n\n"+
			"**Description:** Dishonest taking of movable property without consent.\n\n"+
			"**Punishment:** Imprisonment up to three years, or fine, or both.\n\n"+
			"You said: %s", desc)

	return Result{
		Message: message,
		Suggestions: []string{
			"File a First Information Report at the nearest police station.",
			"Collect any evidence such as photos or witness contacts.",
		},
	}, nil
}

func (c *MockClient) Status(ctx context.Context) (Health, error) {
	select {
	case <-ctx.Done():
		return Health{}, ctx.Err()
	default:
	}
	return Health{TotalSections: 57}, nil
}
