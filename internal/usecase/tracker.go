package usecase

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// Tracker detects connectivity edges and accumulates connected time.
// It is the single owner of ConnectivityState and the running total.
type Tracker struct {
	mu     sync.RWMutex
	state  domain.ConnectivityState
	total  time.Duration
	logs   domain.LogStore
	totals domain.TotalStore
	now    func() time.Time
	logger *zap.Logger
}

// NewTracker creates a tracker starting disconnected, with the persisted total.
func NewTracker(logs domain.LogStore, totals domain.TotalStore, logger *zap.Logger) (*Tracker, error) {
	total, err := totals.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load total connected time: %w", err)
	}
	return &Tracker{
		state:  domain.ConnectivityState{NetworkType: domain.NetworkNone},
		total:  total,
		logs:   logs,
		totals: totals,
		now:    time.Now,
		logger: logger,
	}, nil
}

// Observe feeds one sample through the edge detector.
// It returns nil when the sample does not change the connected flag.
// Store failures are returned after the in-memory state has advanced.
func (t *Tracker) Observe(sample domain.ConnectivitySample) (*domain.TransitionEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := sample.At
	if now.IsZero() {
		now = t.now()
	}
	connected := sample.Caps != nil && sample.Caps.Internet

	switch {
	case connected && !t.state.Connected:
		networkType := ClassifyNetwork(sample.Caps)
		t.state = domain.ConnectivityState{
			Connected:   true,
			NetworkType: networkType,
			Since:       now,
		}
		event := &domain.TransitionEvent{
			Entry:       domain.NewLogEntry(domain.KindConnected, now),
			NetworkType: networkType,
		}
		t.logger.Info("network connected",
			zap.String("network_type", string(networkType)),
			zap.String("timestamp", event.Entry.Timestamp))
		return event, t.logs.Append(event.Entry)

	case !connected && t.state.Connected:
		var elapsed time.Duration
		var saveErr error
		if !t.state.Since.IsZero() {
			elapsed = now.Sub(t.state.Since)
			if elapsed < 0 {
				elapsed = 0
			}
			t.total += elapsed
			saveErr = t.totals.Save(t.total)
		}
		t.state = domain.ConnectivityState{NetworkType: domain.NetworkNone}
		event := &domain.TransitionEvent{
			Entry:       domain.NewLogEntry(domain.KindDisconnected, now),
			NetworkType: domain.NetworkNone,
			Elapsed:     elapsed,
		}
		t.logger.Info("network disconnected",
			zap.Duration("elapsed", elapsed),
			zap.Duration("total", t.total),
			zap.String("timestamp", event.Entry.Timestamp))
		return event, errors.Join(saveErr, t.logs.Append(event.Entry))
	}
	return nil, nil
}

// State returns a snapshot of the current connectivity state.
func (t *Tracker) State() domain.ConnectivityState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Total returns the all-time connected duration over closed intervals.
func (t *Tracker) Total() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.total
}

// Status surface texts.
const (
	StatusConnectedLine    = "Status: Connected"
	StatusDisconnectedLine = "Status: Disconnected"
)

// StatusLine renders the status surface.
func (t *Tracker) StatusLine() string {
	if t.State().Connected {
		return StatusConnectedLine
	}
	return StatusDisconnectedLine
}

// NetworkTypeLine renders the network type surface.
func (t *Tracker) NetworkTypeLine() string {
	return "Network Type: " + t.State().NetworkType.Label()
}

// ClassifyNetwork picks the network type with priority WiFi > Cellular > Unknown.
func ClassifyNetwork(caps *domain.Capabilities) domain.NetworkType {
	switch {
	case caps.HasTransport(domain.TransportWiFi):
		return domain.NetworkWiFi
	case caps.HasTransport(domain.TransportCellular):
		return domain.NetworkCellular
	default:
		return domain.NetworkUnknown
	}
}
