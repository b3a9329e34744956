package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/eliteGoblin/focusd/netmon/internal/domain"
)

// NoChangesText is shown when the selected day has no entries.
const NoChangesText = "No network status changes for selected date."

// BuildReport filters entries to the given day and annotates each match with
// the time until the next entry in the full log, which may fall on a later day.
func BuildReport(date time.Time, entries []domain.LogEntry, total time.Duration) domain.DayReport {
	day := date.Format(domain.DateLayout)
	report := domain.DayReport{Date: day, Total: total}

	for i, entry := range entries {
		if !entry.OnDate(day) {
			continue
		}
		line := domain.ReportLine{Entry: entry}
		if i+1 < len(entries) {
			line.Duration, line.HasDuration = between(entry, entries[i+1])
		}
		report.Lines = append(report.Lines, line)
	}
	return report
}

// between returns next-current, or false when either timestamp is malformed.
func between(current, next domain.LogEntry) (time.Duration, bool) {
	from, err := current.Time()
	if err != nil {
		return 0, false
	}
	to, err := next.Time()
	if err != nil {
		return 0, false
	}
	return to.Sub(from), true
}

// FormatDuration renders HH:MM:SS with unbounded hours.
func FormatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes%60, seconds%60)
}

// FormatReportLine renders "<Kind>: <timestamp> (HH:MM:SS)".
func FormatReportLine(line domain.ReportLine) string {
	text := FormatLine(line.Entry)
	if line.HasDuration {
		text += " (" + FormatDuration(line.Duration) + ")"
	}
	return text
}

// TotalLine renders the all-time total surface.
func TotalLine(total time.Duration) string {
	return "Total Connected Time: " + FormatDuration(total)
}

// LogText renders the per-day log block.
func LogText(report domain.DayReport) string {
	if report.Empty() {
		return NoChangesText
	}
	lines := make([]string, len(report.Lines))
	for i, line := range report.Lines {
		lines[i] = FormatReportLine(line)
	}
	return strings.Join(lines, "\n")
}

// ReportText renders the log block followed by the total line.
func ReportText(report domain.DayReport) string {
	return LogText(report) + "\n" + TotalLine(report.Total)
}

// ParseDay parses a "YYYY-MM-DD" date in local time.
func ParseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation(domain.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", value, err)
	}
	return day, nil
}
