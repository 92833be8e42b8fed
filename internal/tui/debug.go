package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DebugPanel shows recent store traffic and validation failures under the card
type DebugPanel struct {
	enabled bool
	lines   []string
	limit   int
	now     func() time.Time
}

// NewDebugPanel creates a debug panel. A disabled panel drops every event.
func NewDebugPanel(enabled bool) DebugPanel {
	return DebugPanel{
		enabled: enabled,
		limit:   50,
		now:     time.Now,
	}
}

// IsEnabled returns whether debug mode is enabled
func (d *DebugPanel) IsEnabled() bool {
	return d.enabled
}

// AddEvent records an event such as "add" with optional details
func (d *DebugPanel) AddEvent(event, details string) {
	if !d.enabled {
		return
	}
	line := d.now().Format("15:04:05.000") + " [" + event + "]"
	if details != "" {
		line += " " + details
	}
	d.lines = append(d.lines, line)
	if len(d.lines) > d.limit {
		d.lines = d.lines[len(d.lines)-d.limit:]
	}
}

// Lines returns the recorded lines, oldest first
func (d *DebugPanel) Lines() []string {
	return d.lines
}

// Render draws the newest lines that fit in height rows
func (d *DebugPanel) Render(width, height int) string {
	if !d.enabled {
		return ""
	}

	rows := height - 3 // border and title
	if rows < 1 {
		rows = 1
	}
	start := 0
	if len(d.lines) > rows {
		start = len(d.lines) - rows
	}

	maxLen := width - 4
	if maxLen < 10 {
		maxLen = 10
	}
	var shown []string
	for _, line := range d.lines[start:] {
		shown = append(shown, truncate(line, maxLen))
	}

	title := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Render("DEBUG")
	return lipgloss.NewStyle().
		Width(width).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorYellow).
		Padding(0, 1).
		Render(title + "\n" + strings.Join(shown, "\n"))
}

// truncate shortens s to max runes, marking the cut with "..."
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
