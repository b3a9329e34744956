package usecase

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// MonitorRegistry records the PID of the running monitor so other
// commands can tell whether transitions are being captured.
type MonitorRegistry struct {
	kv        domain.KeyValueStore
	processes domain.ProcessChecker
}

// NewMonitorRegistry creates a registry on kv.
func NewMonitorRegistry(kv domain.KeyValueStore, processes domain.ProcessChecker) *MonitorRegistry {
	return &MonitorRegistry{kv: kv, processes: processes}
}

// Register saves the current process PID.
func (r *MonitorRegistry) Register() error {
	pid := r.processes.GetCurrentPID()
	if err := r.kv.Set(MonitorPIDKey, strconv.Itoa(pid)); err != nil {
		return fmt.Errorf("failed to register monitor: %w", err)
	}
	return nil
}

// Unregister removes the PID if it is still ours.
func (r *MonitorRegistry) Unregister() error {
	pid, err := r.registeredPID()
	if err != nil {
		return err
	}
	if pid != r.processes.GetCurrentPID() {
		return nil
	}
	return r.kv.Delete(MonitorPIDKey)
}

// RunningPID returns the registered PID when that process is alive.
func (r *MonitorRegistry) RunningPID() (int, bool) {
	pid, err := r.registeredPID()
	if err != nil || pid == 0 {
		return 0, false
	}
	return pid, r.processes.IsRunning(pid)
}

func (r *MonitorRegistry) registeredPID() (int, error) {
	raw, err := r.kv.Get(MonitorPIDKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid monitor pid %q: %w", raw, err)
	}
	return pid, nil
}
