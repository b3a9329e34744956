package usecase

import (
	"errors"
	"time"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// memoryKV implements domain.KeyValueStore for testing
type memoryKV struct {
	values map[string]string
	getErr error
	setErr error
	sets   int
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string]string)}
}

func (m *memoryKV) Get(key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", domain.ErrKeyNotFound
	}
	return v, nil
}

func (m *memoryKV) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.values[key] = value
	return nil
}

func (m *memoryKV) Delete(key string) error {
	delete(m.values, key)
	return nil
}

func (m *memoryKV) Close() error {
	return nil
}

// failingLogStore implements domain.LogStore and fails every append
type failingLogStore struct {
	appended []domain.LogEntry
}

func (f *failingLogStore) Append(entry domain.LogEntry) error {
	f.appended = append(f.appended, entry)
	return errors.New("disk full")
}

func (f *failingLogStore) LoadAll() ([]domain.LogEntry, error) {
	return f.appended, nil
}

func (f *failingLogStore) Clear() error {
	f.appended = nil
	return nil
}

// at builds a local timestamp for test scenarios
func at(hour, min, sec int) time.Time {
	return time.Date(2024, time.January, 2, hour, min, sec, 0, time.Local)
}

var (
	_ domain.KeyValueStore = (*memoryKV)(nil)
	_ domain.LogStore      = (*failingLogStore)(nil)
)
