package domain

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by KeyValueStore.Get for a missing key.
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is string-typed persisted storage.
// Implementations: JSON file (default), SQLCipher database.
type KeyValueStore interface {
	// Get returns the value for key or ErrKeyNotFound.
	Get(key string) (string, error)

	// Set stores value under key.
	Set(key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error

	// Close releases resources.
	Close() error
}

// ConnectivityProbe samples current connectivity.
// Implementation: gopsutil interface listing plus a TCP reachability dial.
type ConnectivityProbe interface {
	// Snapshot returns nil when the platform has no capabilities to report.
	Snapshot(ctx context.Context) (*Capabilities, error)
}

// LogStore is the append-only transition log.
type LogStore interface {
	Append(entry LogEntry) error
	LoadAll() ([]LogEntry, error)
	Clear() error
}

// TotalStore persists the all-time connected duration.
type TotalStore interface {
	Load() (time.Duration, error)
	Save(total time.Duration) error
}

// ProcessChecker reports whether a PID is alive.
type ProcessChecker interface {
	IsRunning(pid int) bool
	GetCurrentPID() int
}

// KeyProvider abstracts the source of encryption keys.
type KeyProvider interface {
	// GetKey returns the encryption key bytes.
	GetKey() ([]byte, error)

	// StoreKey persists a new encryption key.
	StoreKey(key []byte) error

	// KeyExists checks if a key has been generated.
	KeyExists() bool
}
