// Package tui provides the interactive terminal views of Workflowr: the
// kanban board and the live task timer.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workflowr/internal/model"
)

// Color palette.
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorWarning = lipgloss.Color("#F59E0B") // Yellow
	ColorError   = lipgloss.Color("#EF4444") // Red
	ColorSuccess = lipgloss.Color("#10B981") // Green
	ColorActive  = lipgloss.Color("#3B82F6") // Blue
	ColorBorder  = lipgloss.Color("#4B5563") // Dark gray
)

// statusColors tints each board column.
var statusColors = map[model.TaskStatus]lipgloss.Color{
	model.StatusPending:    ColorWarning,
	model.StatusInProgress: ColorActive,
	model.StatusDone:       ColorSuccess,
}

// Base styles.
var (
	StyleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	StyleSubtitle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StyleProject = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StyleTask = lipgloss.NewStyle().
			Bold(true)

	StyleDuration = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorActive)

	StyleRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSuccess)

	StyleWarning = lipgloss.NewStyle().
			Foreground(ColorWarning)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError)
)

// Board styles.
var (
	StyleColumn = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	StyleColumnFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleCard = lipgloss.NewStyle().
			PaddingLeft(1).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(ColorBorder)

	StyleCardSelected = lipgloss.NewStyle().
				PaddingLeft(1).
				Border(lipgloss.ThickBorder(), false, false, false, true).
				BorderForeground(ColorPrimary)
)

// ColumnHeader renders a status column title with its task count.
func ColumnHeader(status model.TaskStatus, count int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(statusColors[status])
	return style.Render(status.Label()) + StyleSubtitle.Render(" ("+strconv.Itoa(count)+")")
}

// ProgressBar renders a percentage as a fixed-width bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}
	if width <= 0 {
		return ""
	}

	filled := int(float64(width) * percentage / 100)
	filledStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	return filledStyle.Render(strings.Repeat("█", filled)) +
		emptyStyle.Render(strings.Repeat("░", width-filled))
}

// FormatProjectTask formats "project/task" with styles.
func FormatProjectTask(project, task string) string {
	if task == "" {
		return StyleProject.Render(project)
	}
	if project == "" {
		return StyleTask.Render(task)
	}
	return StyleProject.Render(project) + "/" + StyleTask.Render(task)
}
