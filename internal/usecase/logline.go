package usecase

import (
	"strings"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// LogFormatVersion identifies the line format written under the logs key.
const LogFormatVersion = "1"

const fieldSeparator = ": "

// FormatLine renders an entry as "<Kind>: <timestamp>".
func FormatLine(entry domain.LogEntry) string {
	if entry.Raw != "" {
		return entry.Raw
	}
	return string(entry.Kind) + fieldSeparator + entry.Timestamp
}

// ParseLine tokenizes one stored line. Lines without a known kind or
// separator come back with Raw set so they are kept but never matched.
func ParseLine(line string) domain.LogEntry {
	kind, timestamp, ok := strings.Cut(line, fieldSeparator)
	if !ok || !domain.EntryKind(kind).Valid() {
		return domain.LogEntry{Raw: line}
	}
	return domain.LogEntry{
		Kind:      domain.EntryKind(kind),
		Timestamp: strings.TrimSpace(timestamp),
	}
}

// ParseLines splits a serialized log, skipping blank lines.
func ParseLines(serialized string) []domain.LogEntry {
	if serialized == "" {
		return nil
	}
	lines := strings.Split(serialized, "\n")
	entries := make([]domain.LogEntry, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, ParseLine(line))
	}
	return entries
}
