package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	runningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981"))

	idleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F59E0B"))

	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	hintStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6B7280"))
)

// Display renders the live view of one task's timer.
type Display struct {
	UseColor bool
	Width    int // progress bar width
}

// NewDisplay creates a display with colour enabled.
func NewDisplay() *Display {
	return &Display{UseColor: true, Width: 30}
}

// FormatClock formats a duration as MM:SS, or HH:MM:SS past an hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSeconds := int(d.Seconds())
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// Frame is everything the display needs for one render.
type Frame struct {
	Task      string
	Project   string
	Elapsed   time.Duration
	Spent     int // minutes already recorded on the task
	Estimated int // minutes, 0 when unestimated
	Running   bool
}

func (d *Display) style(s lipgloss.Style, text string) string {
	if d.UseColor {
		return s.Render(text)
	}
	return text
}

// Render draws the frame: header, clock, progress against the estimate and
// key hints.
func (d *Display) Render(f Frame) string {
	var b strings.Builder

	state := d.style(idleStyle, "PAUSED")
	if f.Running {
		state = d.style(runningStyle, "RUNNING")
	}
	b.WriteString(state)
	b.WriteString("  ")
	b.WriteString(f.Task)
	if f.Project != "" {
		b.WriteString(d.style(progressStyle, " ("+f.Project+")"))
	}
	b.WriteString("\n\n")

	b.WriteString(d.style(clockStyle, FormatClock(f.Elapsed)))
	b.WriteString("\n\n")

	if f.Estimated > 0 {
		live := f.Spent + int(f.Elapsed.Round(time.Minute).Minutes())
		b.WriteString(d.style(progressStyle, d.progressBar(float64(live)/float64(f.Estimated))))
		b.WriteString(fmt.Sprintf("  %d/%d min", live, f.Estimated))
		b.WriteString("\n\n")
	}

	hint := "enter/p pause and record · esc cancel · q quit"
	if !f.Running {
		hint = "space resume · q quit"
	}
	b.WriteString(d.style(hintStyle, hint))
	return b.String()
}

func (d *Display) progressBar(progress float64) string {
	width := d.Width
	if width <= 0 {
		width = 30
	}
	if progress < 0 {
		progress = 0
	}
	percentage := int(progress * 100)
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return fmt.Sprintf("[%s%s] %d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		percentage)
}
