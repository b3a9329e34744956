package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
	"github.com/eliteGoblin/focusd/netmon/internal/usecase"
)

var (
	Green  = lipgloss.Color("#43BF6D")
	Red    = lipgloss.Color("#E5534B")
	Subtle = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#9B9B9B"}

	ConnectedStyle    = lipgloss.NewStyle().Foreground(Green)
	DisconnectedStyle = lipgloss.NewStyle().Foreground(Red)
	HeadingStyle      = lipgloss.NewStyle().Bold(true)
	MutedStyle        = lipgloss.NewStyle().Foreground(Subtle).Italic(true)
)

// ColorRenderer colors Connected lines green and Disconnected lines red.
type ColorRenderer struct{}

// NewColorRenderer creates a lipgloss-backed renderer.
func NewColorRenderer() ColorRenderer {
	return ColorRenderer{}
}

// Render implements Renderer.
func (ColorRenderer) Render(s Surfaces) string {
	var b strings.Builder
	if s.Status != "" {
		style := DisconnectedStyle
		if s.Status == usecase.StatusConnectedLine {
			style = ConnectedStyle
		}
		b.WriteString(style.Bold(true).Render(s.Status) + "\n")
	}
	if s.NetworkType != "" {
		b.WriteString(s.NetworkType + "\n")
	}
	b.WriteString(HeadingStyle.Render("Date: "+s.Report.Date) + "\n")
	b.WriteString(ColorLogText(s.Report) + "\n")
	b.WriteString(HeadingStyle.Render(usecase.TotalLine(s.Report.Total)) + "\n")
	return b.String()
}

// ColorLogText renders the per-day block with kind colors.
func ColorLogText(report domain.DayReport) string {
	if report.Empty() {
		return MutedStyle.Render(usecase.NoChangesText)
	}
	lines := make([]string, len(report.Lines))
	for i, line := range report.Lines {
		lines[i] = LineStyle(line.Entry.Kind).Render(usecase.FormatReportLine(line))
	}
	return strings.Join(lines, "\n")
}

// LineStyle picks the style for an entry kind.
func LineStyle(kind domain.EntryKind) lipgloss.Style {
	switch kind {
	case domain.KindConnected:
		return ConnectedStyle
	case domain.KindDisconnected:
		return DisconnectedStyle
	default:
		return lipgloss.NewStyle()
	}
}
