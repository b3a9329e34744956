package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPersistedStatus(t *testing.T) {
	tests := []struct {
		name       string
		logs       string
		total      string
		wantStatus string
		wantTotal  time.Duration
		wantLast   string
	}{
		{
			name:       "no data",
			wantStatus: StatusDisconnectedLine,
		},
		{
			name:       "last entry connected",
			logs:       "Disconnected: 2024-01-02 09:00:00\nConnected: 2024-01-02 10:00:00\n",
			total:      "5000",
			wantStatus: StatusConnectedLine,
			wantTotal:  5 * time.Second,
			wantLast:   "2024-01-02 10:00:00",
		},
		{
			name:       "trailing corrupted line is skipped",
			logs:       "Connected: 2024-01-02 10:00:00\nDisconnected: 2024-01-02 10:00:05\n@@@\n",
			total:      "5000",
			wantStatus: StatusDisconnectedLine,
			wantTotal:  5 * time.Second,
			wantLast:   "2024-01-02 10:00:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMemoryKV()
			if tt.logs != "" {
				kv.values[LogsKey] = tt.logs
			}
			if tt.total != "" {
				kv.values[TotalConnectedKey] = tt.total
			}
			s := NewPersistedStatus(NewLogStore(kv), NewTotalStore(kv))

			assert.Equal(t, tt.wantStatus, s.StatusLine())
			assert.Equal(t, "Network Type: ", s.NetworkTypeLine())
			assert.Equal(t, tt.wantTotal, s.Total())

			last, ok := s.LastEntry()
			assert.Equal(t, tt.wantLast != "", ok)
			assert.Equal(t, tt.wantLast, last.Timestamp)
		})
	}
}

func TestPersistedStatus_StoreErrors(t *testing.T) {
	kv := newMemoryKV()
	kv.getErr = errors.New("locked")
	s := NewPersistedStatus(NewLogStore(kv), NewTotalStore(kv))

	assert.Equal(t, StatusDisconnectedLine, s.StatusLine())
	assert.Zero(t, s.Total())
}
