package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want domain.LogEntry
	}{
		{
			name: "connected",
			line: "Connected: 2024-01-02 10:00:00",
			want: domain.LogEntry{Kind: domain.KindConnected, Timestamp: "2024-01-02 10:00:00"},
		},
		{
			name: "disconnected",
			line: "Disconnected: 2024-01-02 23:59:59",
			want: domain.LogEntry{Kind: domain.KindDisconnected, Timestamp: "2024-01-02 23:59:59"},
		},
		{
			name: "malformed timestamp keeps kind",
			line: "Connected: 2024-01-02 xx:00:00",
			want: domain.LogEntry{Kind: domain.KindConnected, Timestamp: "2024-01-02 xx:00:00"},
		},
		{
			name: "unknown kind kept raw",
			line: "Reconnecting: 2024-01-02 10:00:00",
			want: domain.LogEntry{Raw: "Reconnecting: 2024-01-02 10:00:00"},
		},
		{
			name: "no separator kept raw",
			line: "garbage",
			want: domain.LogEntry{Raw: "garbage"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.line, FormatLine(got))
		})
	}
}

func TestParseLines(t *testing.T) {
	assert.Nil(t, ParseLines(""))

	entries := ParseLines("Connected: 2024-01-02 10:00:00\r\n\nDisconnected: 2024-01-02 10:00:05\n")
	assert.Equal(t, []domain.LogEntry{
		{Kind: domain.KindConnected, Timestamp: "2024-01-02 10:00:00"},
		{Kind: domain.KindDisconnected, Timestamp: "2024-01-02 10:00:05"},
	}, entries)
}
