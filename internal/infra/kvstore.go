package infra

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

const kvFileName = "state.json"

// FileKVStore implements domain.KeyValueStore using a JSON object on disk.
// Every write is a locked read-modify-write followed by an atomic rename.
type FileKVStore struct {
	mu   sync.Mutex
	path string
}

// NewFileKVStore creates a store in dataDir.
func NewFileKVStore(dataDir string) (*FileKVStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKVStore{path: filepath.Join(dataDir, kvFileName)}, nil
}

// NewFileKVStoreWithPath creates a store at a specific file path (for testing).
func NewFileKVStoreWithPath(path string) *FileKVStore {
	return &FileKVStore{path: path}
}

// Path returns the backing file path.
func (s *FileKVStore) Path() string {
	return s.path
}

// Get returns the value for key.
func (s *FileKVStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.readAll()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return value, nil
}

// Set stores value under key.
func (s *FileKVStore) Set(key, value string) error {
	return s.update(func(values map[string]string) {
		values[key] = value
	})
}

// Delete removes key.
func (s *FileKVStore) Delete(key string) error {
	return s.update(func(values map[string]string) {
		delete(values, key)
	})
}

// Close is a no-op; the file is not held open.
func (s *FileKVStore) Close() error {
	return nil
}

func (s *FileKVStore) update(mutate func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Lock file keeps a concurrent `netmon clear` from interleaving with the monitor
	lockFile, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer func() { _ = syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN) }()

	values, err := s.readAll()
	if err != nil {
		return err
	}
	mutate(values)
	return s.atomicWrite(values)
}

func (s *FileKVStore) readAll() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	values := map[string]string{}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}
	return values, nil
}

// atomicWrite writes the map to file atomically (write + rename).
func (s *FileKVStore) atomicWrite(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", s.path, os.Getpid())
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Ensure FileKVStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileKVStore)(nil)
