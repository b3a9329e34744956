// Package ui renders the status, network type, day log and total surfaces.
package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/usecase"
)

// StatusSource exposes the tracker's display state.
type StatusSource interface {
	StatusLine() string
	NetworkTypeLine() string
	Total() time.Duration
}

// Surfaces is everything one frame shows.
type Surfaces struct {
	Status      string
	NetworkType string
	Report      domain.DayReport
}

// Collect builds the surfaces for the given day from current state.
func Collect(status StatusSource, logs domain.LogStore, date time.Time) (Surfaces, error) {
	entries, err := logs.LoadAll()
	if err != nil {
		return Surfaces{}, fmt.Errorf("failed to load logs: %w", err)
	}
	return Surfaces{
		Status:      status.StatusLine(),
		NetworkType: status.NetworkTypeLine(),
		Report:      usecase.BuildReport(date, entries, status.Total()),
	}, nil
}

// Renderer turns surfaces into display text.
type Renderer interface {
	Render(s Surfaces) string
}

// NewRenderer returns a colored renderer when color is set.
func NewRenderer(color bool) Renderer {
	if color {
		return NewColorRenderer()
	}
	return PlainRenderer{}
}

// PlainRenderer renders uncolored text.
type PlainRenderer struct{}

// Render implements Renderer.
func (PlainRenderer) Render(s Surfaces) string {
	var b strings.Builder
	if s.Status != "" {
		b.WriteString(s.Status + "\n")
	}
	if s.NetworkType != "" {
		b.WriteString(s.NetworkType + "\n")
	}
	b.WriteString("Date: " + s.Report.Date + "\n")
	b.WriteString(usecase.ReportText(s.Report))
	b.WriteString("\n")
	return b.String()
}

// WriterDisplay writes each rendered frame to an io.Writer.
type WriterDisplay struct {
	mu       sync.Mutex
	w        io.Writer
	renderer Renderer
	clear    bool
}

// NewWriterDisplay creates a display. With clear set, each frame
// first resets the terminal so the report refreshes in place.
func NewWriterDisplay(w io.Writer, renderer Renderer, clear bool) *WriterDisplay {
	return &WriterDisplay{w: w, renderer: renderer, clear: clear}
}

// Show writes one frame.
func (d *WriterDisplay) Show(s Surfaces) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	frame := d.renderer.Render(s)
	if d.clear {
		frame = "\033[H\033[2J" + frame
	}
	_, err := io.WriteString(d.w, frame)
	return err
}
