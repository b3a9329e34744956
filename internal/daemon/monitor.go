// Package daemon runs the connectivity monitor and the report refresher.
package daemon

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// Observer consumes connectivity samples.
type Observer interface {
	Observe(sample domain.ConnectivitySample) (*domain.TransitionEvent, error)
}

// Registry records the running monitor.
type Registry interface {
	Register() error
	Unregister() error
}

// MonitorConfig holds monitor configuration.
type MonitorConfig struct {
	PollInterval     time.Duration // How often the probe is sampled
	QueueSize        int           // Pending samples before new ones are dropped
	ClearLogsOnStart bool          // Start every session with an empty log
}

// DefaultMonitorConfig returns default monitor configuration.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		PollInterval: 2 * time.Second,
		QueueSize:    16,
	}
}

// Monitor delivers connectivity samples to the tracker through one queue.
// Only the Run goroutine calls the observer, so state has a single writer.
type Monitor struct {
	config   MonitorConfig
	probe    domain.ConnectivityProbe
	observer Observer
	logs     domain.LogStore
	registry Registry
	queue    chan domain.ConnectivitySample
	now      func() time.Time
	logger   *zap.Logger
}

// NewMonitor creates a new monitor. registry may be nil.
func NewMonitor(
	config MonitorConfig,
	probe domain.ConnectivityProbe,
	observer Observer,
	logs domain.LogStore,
	registry Registry,
	logger *zap.Logger,
) *Monitor {
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultMonitorConfig().QueueSize
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultMonitorConfig().PollInterval
	}
	return &Monitor{
		config:   config,
		probe:    probe,
		observer: observer,
		logs:     logs,
		registry: registry,
		queue:    make(chan domain.ConnectivitySample, config.QueueSize),
		now:      time.Now,
		logger:   logger,
	}
}

// Notify enqueues a sample without blocking.
// A full queue drops the sample; the next one reflects the coalesced state.
func (m *Monitor) Notify(sample domain.ConnectivitySample) bool {
	select {
	case m.queue <- sample:
		return true
	default:
		m.logger.Debug("sample queue full, dropping sample")
		return false
	}
}

// Run starts polling and drains the queue until ctx is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	if m.config.ClearLogsOnStart {
		if err := m.logs.Clear(); err != nil {
			m.logger.Error("failed to clear logs on start", zap.Error(err))
			return err
		}
		m.logger.Info("logs cleared for new session")
	}

	if m.registry != nil {
		if err := m.registry.Register(); err != nil {
			m.logger.Warn("failed to register monitor", zap.Error(err))
		}
		defer func() {
			if err := m.registry.Unregister(); err != nil {
				m.logger.Warn("failed to unregister monitor", zap.Error(err))
			}
		}()
	}

	m.logger.Info("monitor started", zap.Duration("poll_interval", m.config.PollInterval))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		m.poll(ctx)
	}()
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopping")
			return ctx.Err()

		case sample := <-m.queue:
			m.handle(sample)
		}
	}
}

// poll samples the probe immediately and then on every tick.
func (m *Monitor) poll(ctx context.Context) {
	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	m.Notify(m.sample(ctx))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Notify(m.sample(ctx))
		}
	}
}

// sample never fails; a probe error reads as disconnected.
func (m *Monitor) sample(ctx context.Context) domain.ConnectivitySample {
	caps, err := m.probe.Snapshot(ctx)
	if err != nil {
		m.logger.Warn("connectivity probe failed, treating as disconnected", zap.Error(err))
		caps = nil
	}
	return domain.ConnectivitySample{Caps: caps, At: m.now()}
}

func (m *Monitor) handle(sample domain.ConnectivitySample) {
	event, err := m.observer.Observe(sample)
	if err != nil {
		m.logger.Error("failed to record transition", zap.Error(err))
	}
	if event != nil {
		m.logger.Debug("transition recorded",
			zap.String("kind", string(event.Entry.Kind)),
			zap.String("timestamp", event.Entry.Timestamp))
	}
}
