package infra

import (
	"context"
	"net"
	"strings"
	"time"

	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

const (
	// DefaultProbeTarget is dialed to confirm internet reachability.
	DefaultProbeTarget = "1.1.1.1:53"
	// DefaultProbeTimeout bounds the reachability dial.
	DefaultProbeTimeout = 3 * time.Second
)

// Interface name prefixes per transport. Checked in order, first match wins.
var transportPrefixes = []struct {
	transport domain.Transport
	prefixes  []string
}{
	{domain.TransportWiFi, []string{"wl", "wifi", "ath", "ra"}},
	{domain.TransportCellular, []string{"wwan", "rmnet", "ccmni", "pdp_ip", "ppp"}},
	{domain.TransportEthernet, []string{"eth", "en", "em"}},
}

// ProbeConfig configures NetProbe.
type ProbeConfig struct {
	Target     string                      // host:port dialed for reachability
	Timeout    time.Duration               // dial timeout
	Transports map[string]domain.Transport // per-interface overrides
}

// NetProbe implements domain.ConnectivityProbe using gopsutil interface
// listing and a TCP dial for reachability.
type NetProbe struct {
	config     ProbeConfig
	interfaces func(ctx context.Context) (psnet.InterfaceStatList, error)
	dial       func(ctx context.Context, network, address string) (net.Conn, error)
}

// NewNetProbe creates a probe against the live host network stack.
func NewNetProbe(config ProbeConfig) *NetProbe {
	if config.Target == "" {
		config.Target = DefaultProbeTarget
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultProbeTimeout
	}
	dialer := &net.Dialer{}
	return &NetProbe{
		config:     config,
		interfaces: psnet.InterfacesWithContext,
		dial:       dialer.DialContext,
	}
}

// Snapshot returns nil when no usable interface is up.
func (p *NetProbe) Snapshot(ctx context.Context) (*domain.Capabilities, error) {
	ifaces, err := p.interfaces(ctx)
	if err != nil {
		return nil, err
	}

	var active []psnet.InterfaceStat
	for _, iface := range ifaces {
		if isActive(iface) {
			active = append(active, iface)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}

	caps := &domain.Capabilities{Interface: active[0].Name}
	seen := make(map[domain.Transport]bool)
	for _, iface := range active {
		t := p.classify(iface.Name)
		if !seen[t] {
			seen[t] = true
			caps.Transports = append(caps.Transports, t)
		}
	}

	caps.Internet = p.reachable(ctx)
	return caps, nil
}

func (p *NetProbe) reachable(ctx context.Context) bool {
	dialCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	conn, err := p.dial(dialCtx, "tcp", p.config.Target)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (p *NetProbe) classify(name string) domain.Transport {
	if t, ok := p.config.Transports[name]; ok {
		return t
	}
	return ClassifyInterface(name)
}

// ClassifyInterface guesses the transport from a Linux/BSD interface name.
func ClassifyInterface(name string) domain.Transport {
	lower := strings.ToLower(name)
	for _, group := range transportPrefixes {
		for _, prefix := range group.prefixes {
			if strings.HasPrefix(lower, prefix) {
				return group.transport
			}
		}
	}
	return domain.TransportOther
}

// isActive reports an up, non-loopback interface with a routable address.
func isActive(iface psnet.InterfaceStat) bool {
	up := false
	for _, flag := range iface.Flags {
		switch flag {
		case "loopback":
			return false
		case "up":
			up = true
		}
	}
	if !up {
		return false
	}
	for _, addr := range iface.Addrs {
		ip, _, err := net.ParseCIDR(addr.Addr)
		if err != nil {
			ip = net.ParseIP(addr.Addr)
		}
		if ip != nil && !ip.IsLoopback() && !ip.IsLinkLocalUnicast() {
			return true
		}
	}
	return false
}

// Ensure NetProbe implements domain.ConnectivityProbe.
var _ domain.ConnectivityProbe = (*NetProbe)(nil)
