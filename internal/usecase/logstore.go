// Package usecase contains the transition tracker, log store and day report logic.
package usecase

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// Persisted keys.
const (
	LogsKey           = "logs"
	LogsFormatKey     = "logs_format"
	TotalConnectedKey = "total_connected_time"
	MonitorPIDKey     = "monitor_pid"
)

// KVLogStore implements domain.LogStore on a single key of a KeyValueStore.
type KVLogStore struct {
	mu      sync.Mutex
	kv      domain.KeyValueStore
	entries []domain.LogEntry
}

// NewLogStore creates a log store backed by kv.
func NewLogStore(kv domain.KeyValueStore) *KVLogStore {
	return &KVLogStore{kv: kv}
}

// Append reads the stored log, adds one line and writes it back.
func (s *KVLogStore) Append(entry domain.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.kv.Get(LogsKey)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("failed to read logs: %w", err)
	}
	if err := s.checkFormat(); err != nil {
		return err
	}

	if err := s.kv.Set(LogsKey, existing+FormatLine(entry)+"\n"); err != nil {
		return fmt.Errorf("failed to write logs: %w", err)
	}
	if err := s.kv.Set(LogsFormatKey, LogFormatVersion); err != nil {
		return fmt.Errorf("failed to write logs format: %w", err)
	}
	s.entries = append(s.entries, entry)
	return nil
}

// LoadAll returns every stored entry in insertion order.
func (s *KVLogStore) LoadAll() ([]domain.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFormat(); err != nil {
		return nil, err
	}
	serialized, err := s.kv.Get(LogsKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		s.entries = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read logs: %w", err)
	}

	s.entries = ParseLines(serialized)
	out := make([]domain.LogEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Clear removes the logs key and empties the in-memory sequence.
func (s *KVLogStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(LogsKey); err != nil {
		return fmt.Errorf("failed to clear logs: %w", err)
	}
	if err := s.kv.Delete(LogsFormatKey); err != nil {
		return fmt.Errorf("failed to clear logs format: %w", err)
	}
	s.entries = nil
	return nil
}

// checkFormat rejects logs written by an unknown format version.
// A missing version is accepted.
func (s *KVLogStore) checkFormat() error {
	version, err := s.kv.Get(LogsFormatKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read logs format: %w", err)
	}
	if version != LogFormatVersion {
		return fmt.Errorf("unsupported logs format %q", version)
	}
	return nil
}

// KVTotalStore implements domain.TotalStore as integer milliseconds.
type KVTotalStore struct {
	kv domain.KeyValueStore
}

// NewTotalStore creates a total store backed by kv.
func NewTotalStore(kv domain.KeyValueStore) *KVTotalStore {
	return &KVTotalStore{kv: kv}
}

// Load returns zero when nothing has been saved yet.
func (s *KVTotalStore) Load() (time.Duration, error) {
	raw, err := s.kv.Get(TotalConnectedKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read total connected time: %w", err)
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse total connected time %q: %w", raw, err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Save persists the total.
func (s *KVTotalStore) Save(total time.Duration) error {
	if err := s.kv.Set(TotalConnectedKey, strconv.FormatInt(total.Milliseconds(), 10)); err != nil {
		return fmt.Errorf("failed to write total connected time: %w", err)
	}
	return nil
}

// Ensure implementations satisfy the domain interfaces.
var (
	_ domain.LogStore   = (*KVLogStore)(nil)
	_ domain.TotalStore = (*KVTotalStore)(nil)
)
