// Package config loads netmon settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/infra"
)

// Storage backends.
const (
	BackendFile      = "file"
	BackendEncrypted = "encrypted"
)

// Config represents configuration data for the monitor.
type Config struct {
	DataDir                string `yaml:"data_dir"`
	Backend                string `yaml:"backend"`
	PollIntervalSeconds    int    `yaml:"poll_interval_seconds"`
	RefreshIntervalSeconds int    `yaml:"refresh_interval_seconds"`
	ClearLogsOnStart       bool   `yaml:"clear_logs_on_start"`
	Color                  bool   `yaml:"color"`
	LogLevel               string `yaml:"log_level"`
	Probe                  Probe  `yaml:"probe"`
}

// Probe configures the connectivity probe.
type Probe struct {
	Target         string            `yaml:"target"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	Transports     map[string]string `yaml:"transports"` // interface name -> wifi|cellular|ethernet|other
}

// DefaultConfig returns defaults used when no configuration file is present.
func DefaultConfig() Config {
	return Config{
		DataDir:                infra.DetectPaths().DataDir,
		Backend:                BackendFile,
		PollIntervalSeconds:    2,
		RefreshIntervalSeconds: 1,
		Color:                  true,
		LogLevel:               "info",
		Probe: Probe{
			Target:         infra.DefaultProbeTarget,
			TimeoutSeconds: int(infra.DefaultProbeTimeout / time.Second),
		},
	}
}

// Load reads configuration from a YAML file. Missing files fall back to defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	defaults := DefaultConfig()
	if cfg.DataDir == "" {
		cfg.DataDir = defaults.DataDir
	}
	cfg.DataDir = infra.ExpandHome(cfg.DataDir, infra.GetRealUserHome())
	if cfg.Backend == "" {
		cfg.Backend = BackendFile
	}
	if cfg.PollIntervalSeconds <= 0 {
		cfg.PollIntervalSeconds = defaults.PollIntervalSeconds
	}
	if cfg.RefreshIntervalSeconds <= 0 {
		cfg.RefreshIntervalSeconds = defaults.RefreshIntervalSeconds
	}
	if cfg.Probe.TimeoutSeconds <= 0 {
		cfg.Probe.TimeoutSeconds = defaults.Probe.TimeoutSeconds
	}
	if cfg.Probe.Target == "" {
		cfg.Probe.Target = defaults.Probe.Target
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendEncrypted:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendEncrypted)
	}
	for name, t := range c.Probe.Transports {
		switch domain.Transport(t) {
		case domain.TransportWiFi, domain.TransportCellular, domain.TransportEthernet, domain.TransportOther:
		default:
			return fmt.Errorf("interface %s: unknown transport %q", name, t)
		}
	}
	return nil
}

// PollInterval is the probe period.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// RefreshInterval is the report re-render period.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// ProbeConfig converts the probe section for infra.NewNetProbe.
func (c Config) ProbeConfig() infra.ProbeConfig {
	transports := make(map[string]domain.Transport, len(c.Probe.Transports))
	for name, t := range c.Probe.Transports {
		transports[name] = domain.Transport(t)
	}
	return infra.ProbeConfig{
		Target:     c.Probe.Target,
		Timeout:    time.Duration(c.Probe.TimeoutSeconds) * time.Second,
		Transports: transports,
	}
}

// OpenStore opens the configured key-value backend.
func (c Config) OpenStore() (domain.KeyValueStore, error) {
	switch c.Backend {
	case BackendEncrypted:
		key, err := infra.EnsureKey(infra.NewFileKeyProvider(c.DataDir))
		if err != nil {
			return nil, fmt.Errorf("failed to load state key: %w", err)
		}
		return infra.NewEncryptedKVStore(c.DataDir, key)
	default:
		return infra.NewFileKVStore(c.DataDir)
	}
}
