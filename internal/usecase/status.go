package usecase

import (
	"time"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// PersistedStatus derives the status surfaces from stored data, for
// readers running alongside a monitor in another process. The network
// type is not persisted, so its label stays empty.
type PersistedStatus struct {
	logs   domain.LogStore
	totals domain.TotalStore
}

// NewPersistedStatus creates a status source over the stores.
func NewPersistedStatus(logs domain.LogStore, totals domain.TotalStore) *PersistedStatus {
	return &PersistedStatus{logs: logs, totals: totals}
}

// LastEntry returns the most recent well-formed entry.
func (s *PersistedStatus) LastEntry() (domain.LogEntry, bool) {
	entries, err := s.logs.LoadAll()
	if err != nil {
		return domain.LogEntry{}, false
	}
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Raw == "" {
			return entries[i], true
		}
	}
	return domain.LogEntry{}, false
}

// StatusLine reports Connected when the last entry is a connect.
func (s *PersistedStatus) StatusLine() string {
	if last, ok := s.LastEntry(); ok && last.Kind == domain.KindConnected {
		return StatusConnectedLine
	}
	return StatusDisconnectedLine
}

// NetworkTypeLine renders the network type surface with no label.
func (s *PersistedStatus) NetworkTypeLine() string {
	return "Network Type: " + domain.NetworkNone.Label()
}

// Total returns the persisted all-time total; load errors read as zero.
func (s *PersistedStatus) Total() time.Duration {
	total, err := s.totals.Load()
	if err != nil {
		return 0
	}
	return total
}
