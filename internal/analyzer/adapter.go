package analyzer

import (
	"errors"
	"fmt"
	"strings"
)

// Config controls client construction.
type Config struct {
	Mode    string
	BaseURL string
}

// NewClient picks an analysis client for the configured mode.
func NewClient(cfg Config) (Client, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = "auto"
	}

	switch mode {
	case "auto":
		if strings.TrimSpace(cfg.BaseURL) != "" {
			return NewHTTPClient(cfg.BaseURL), nil
		}
		return NewMockClient(), nil
	case "http":
		if strings.TrimSpace(cfg.BaseURL) == "" {
			return nil, errors.New("analyzer base URL is required for http mode")
		}
		return NewHTTPClient(cfg.BaseURL), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unsupported analyzer mode %q", cfg.Mode)
	}
}
