// Package fixtures provides test helpers for integration tests.
package fixtures

import (
	"context"
	"sync"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// ScriptedProbe is a connectivity probe whose answer the test controls.
type ScriptedProbe struct {
	mu    sync.Mutex
	caps  *domain.Capabilities
	calls int
}

// NewScriptedProbe creates a probe that reports no network.
func NewScriptedProbe() *ScriptedProbe {
	return &ScriptedProbe{}
}

// Online makes the probe report internet over the given transport.
func (p *ScriptedProbe) Online(transport domain.Transport) {
	p.Set(&domain.Capabilities{
		Internet:   true,
		Transports: []domain.Transport{transport},
		Interface:  "test0",
	})
}

// Offline makes the probe report no network.
func (p *ScriptedProbe) Offline() {
	p.Set(nil)
}

// Set replaces the reported capabilities.
func (p *ScriptedProbe) Set(caps *domain.Capabilities) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.caps = caps
}

// Calls returns how many snapshots were taken.
func (p *ScriptedProbe) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// Snapshot implements domain.ConnectivityProbe.
func (p *ScriptedProbe) Snapshot(ctx context.Context) (*domain.Capabilities, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.caps, nil
}

var _ domain.ConnectivityProbe = (*ScriptedProbe)(nil)
