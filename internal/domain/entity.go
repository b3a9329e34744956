// Package domain contains core business entities and interfaces.
// This is the innermost layer - no external dependencies.
package domain

import (
	"strings"
	"time"
)

// TimestampLayout is the on-disk layout of log entry timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar-day prefix of TimestampLayout.
const DateLayout = "2006-01-02"

// NetworkType classifies the link carrying an active connection.
type NetworkType string

const (
	NetworkWiFi     NetworkType = "WiFi"
	NetworkCellular NetworkType = "Cellular"
	NetworkUnknown  NetworkType = "Unknown"
	NetworkNone     NetworkType = "None"
)

// Label returns the text shown on the network type surface.
func (t NetworkType) Label() string {
	switch t {
	case NetworkWiFi:
		return "WiFi"
	case NetworkCellular:
		return "Mobile Data"
	case NetworkUnknown:
		return "Unknown"
	default:
		return ""
	}
}

// Transport is a link kind reported for an active network.
type Transport string

const (
	TransportWiFi     Transport = "wifi"
	TransportCellular Transport = "cellular"
	TransportEthernet Transport = "ethernet"
	TransportOther    Transport = "other"
)

// Capabilities is one platform connectivity snapshot.
type Capabilities struct {
	Internet   bool
	Transports []Transport
	Interface  string // Interface that carried the snapshot, if known
}

// HasTransport reports whether t is among the snapshot's transports.
func (c *Capabilities) HasTransport(t Transport) bool {
	if c == nil {
		return false
	}
	for _, have := range c.Transports {
		if have == t {
			return true
		}
	}
	return false
}

// ConnectivitySample is a message on the tracker's event queue.
// A nil Caps means the platform returned no capabilities object.
type ConnectivitySample struct {
	Caps *Capabilities
	At   time.Time
}

// ConnectivityState is the tracker's view of the current link.
type ConnectivityState struct {
	Connected   bool
	NetworkType NetworkType
	Since       time.Time // Zero while disconnected
}

// EntryKind is the recorded direction of a transition.
type EntryKind string

const (
	KindConnected    EntryKind = "Connected"
	KindDisconnected EntryKind = "Disconnected"
)

// Valid reports whether k is one of the known kinds.
func (k EntryKind) Valid() bool {
	return k == KindConnected || k == KindDisconnected
}

// LogEntry is one recorded transition.
// Raw holds the original text for lines that did not tokenize.
type LogEntry struct {
	Kind      EntryKind
	Timestamp string
	Raw       string
}

// NewLogEntry stamps a new entry at the given instant in local time.
func NewLogEntry(kind EntryKind, at time.Time) LogEntry {
	return LogEntry{Kind: kind, Timestamp: at.Local().Format(TimestampLayout)}
}

// Time parses the entry timestamp in local time.
func (e LogEntry) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, e.Timestamp, time.Local)
}

// OnDate reports whether the entry belongs to the given "YYYY-MM-DD" day.
// Comparison is a plain prefix match on the timestamp text.
func (e LogEntry) OnDate(day string) bool {
	if e.Raw != "" {
		return false
	}
	return strings.HasPrefix(e.Timestamp, day)
}

// TransitionEvent is emitted by the tracker on every detected edge.
type TransitionEvent struct {
	Entry       LogEntry
	NetworkType NetworkType
	Elapsed     time.Duration // Closed interval length, disconnect edges only
}

// ReportLine is one annotated entry in a day report.
type ReportLine struct {
	Entry       LogEntry
	Duration    time.Duration
	HasDuration bool
}

// DayReport is the filtered, duration-annotated log for one calendar day.
type DayReport struct {
	Date  string
	Lines []ReportLine
	Total time.Duration // All-time total, not scoped to Date
}

// Empty reports whether no entry matched the day.
func (r DayReport) Empty() bool {
	return len(r.Lines) == 0
}
