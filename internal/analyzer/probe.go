package analyzer

import (
	"context"
	"sync"
)

// Probe holds the capability flags reported by the status endpoint. It is
// filled by a single query at startup; a failed query leaves it unset and is
// never retried.
type Probe struct {
	mu     sync.RWMutex
	health Health
	set    bool
}

func NewProbe() *Probe { return &Probe{} }

// Run queries the status endpoint once and stores the result on success.
func (p *Probe) Run(ctx context.Context, client Client) error {
	health, err := client.Status(ctx)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.health = health
	p.set = true
	p.mu.Unlock()
	return nil
}

// Snapshot returns the stored flags and whether the probe ever succeeded.
func (p *Probe) Snapshot() (Health, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.health, p.set
}
