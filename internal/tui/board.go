package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/metrics"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/output"
	"github.com/manav03panchal/workflowr/internal/store"
	"github.com/manav03panchal/workflowr/internal/timer"
	"github.com/manav03panchal/workflowr/internal/validate"
)

// tickMsg re-renders running timers.
type tickMsg time.Time

// refreshMsg reloads the columns from the stores.
type refreshMsg struct{}

// BoardConfig holds configuration for the board.
type BoardConfig struct {
	Session *store.Session
	// ProjectID limits the board to one project. Empty shows every task.
	ProjectID       string
	RefreshInterval time.Duration
	Now             func() time.Time
}

// BoardModel is a kanban view with one column per task status. Moving a
// card between columns updates the task status.
type BoardModel struct {
	session   *store.Session
	projectID string
	projects  map[string]string
	columns   [][]*model.Task

	col, row int

	keys boardKeys
	help help.Model

	width      int
	height     int
	err        error
	message    string
	messageExp time.Time

	refreshInterval time.Duration
	now             func() time.Time
}

// NewBoardModel creates a board over the session's stores.
func NewBoardModel(cfg BoardConfig) *BoardModel {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	m := &BoardModel{
		session:         cfg.Session,
		projectID:       cfg.ProjectID,
		keys:            newBoardKeys(),
		help:            help.New(),
		refreshInterval: cfg.RefreshInterval,
		now:             cfg.Now,
	}
	m.loadData()
	return m
}

// Init initializes the model.
func (m *BoardModel) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.refreshCmd())
}

// Update handles messages and updates the model.
func (m *BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if !m.messageExp.IsZero() && m.now().After(m.messageExp) {
			m.message = ""
			m.messageExp = time.Time{}
		}
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil
	}
	return m, nil
}

func (m *BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pauseAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < len(m.columns[m.col])-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.PrevCol):
		m.focusColumn(m.col - 1)

	case key.Matches(msg, m.keys.NextCol):
		m.focusColumn(m.col + 1)

	case key.Matches(msg, m.keys.MoveLeft):
		m.moveSelected(-1)

	case key.Matches(msg, m.keys.MoveRight):
		m.moveSelected(1)

	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()

	case key.Matches(msg, m.keys.Cancel):
		if t := m.Selected(); t != nil && m.session.Timers.IsRunning(t.ID) {
			m.session.Timers.Reset(t.ID)
			m.setMessage("Timer cancelled, nothing recorded")
		}

	case key.Matches(msg, m.keys.Refresh):
		m.loadData()
		m.setMessage("Refreshed")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// Selected returns the task under the cursor, or nil for an empty column.
func (m *BoardModel) Selected() *model.Task {
	column := m.columns[m.col]
	if m.row < 0 || m.row >= len(column) {
		return nil
	}
	return column[m.row]
}

// Column returns the tasks shown in the given status column.
func (m *BoardModel) Column(status model.TaskStatus) []*model.Task {
	for i, s := range model.Statuses {
		if s == status {
			return m.columns[i]
		}
	}
	return nil
}

// Err returns the last store error shown on the board.
func (m *BoardModel) Err() error {
	return m.err
}

func (m *BoardModel) focusColumn(col int) {
	if col < 0 || col >= len(model.Statuses) {
		return
	}
	m.col = col
	m.clampRow()
}

// moveSelected shifts the selected task delta columns and keeps it selected.
func (m *BoardModel) moveSelected(delta int) {
	t := m.Selected()
	target := m.col + delta
	if t == nil || target < 0 || target >= len(model.Statuses) {
		return
	}

	status := model.Statuses[target]
	if err := m.session.Tasks.UpdateStatus(t.ID, status); err != nil {
		m.err = err
		return
	}
	logging.LogOperation("board.move", logging.KeyTask, t.ID, logging.KeyStatus, status)

	m.loadData()
	m.col = target
	m.row = 0
	for i, c := range m.columns[target] {
		if c.ID == t.ID {
			m.row = i
			break
		}
	}
}

func (m *BoardModel) toggleSelected() {
	t := m.Selected()
	if t == nil {
		return
	}
	timers := m.session.Timers
	if !timers.IsRunning(t.ID) {
		timers.Start(t.ID)
		m.setMessage("Timer started for " + m.label(t))
		return
	}

	log, err := timers.Pause(t.ID)
	if err != nil {
		m.err = err
		return
	}
	m.setMessage(fmt.Sprintf("Recorded %s on %s", output.FormatHours(log.Duration), m.label(t)))
	m.loadData()
}

// pauseAll records every running timer so quitting the board keeps the time.
func (m *BoardModel) pauseAll() {
	for _, id := range m.session.Timers.Running() {
		if _, err := m.session.Timers.Pause(id); err != nil {
			m.err = err
		}
	}
}

// loadData rebuilds the columns from the task store.
func (m *BoardModel) loadData() {
	m.projects = make(map[string]string)
	for _, p := range m.session.Projects.List() {
		m.projects[p.ID] = p.Name
	}

	m.columns = make([][]*model.Task, len(model.Statuses))
	tasks := metrics.FilterByProject(m.session.Tasks.List(), m.projectID)
	for i, s := range model.Statuses {
		for _, t := range tasks {
			if t.Status == s {
				m.columns[i] = append(m.columns[i], t)
			}
		}
	}
	m.clampRow()
}

func (m *BoardModel) clampRow() {
	n := len(m.columns[m.col])
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// View renders the board.
func (m *BoardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.message != "" {
		sections = append(sections, StyleWarning.Render(m.message))
	}

	colWidth := (m.width - 2*len(model.Statuses)) / len(model.Statuses)
	if colWidth < 24 {
		colWidth = 24
	}
	cols := make([]string, len(model.Statuses))
	for i, s := range model.Statuses {
		cols[i] = m.renderColumn(i, s, colWidth)
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *BoardModel) renderHeader() string {
	title := "Workflowr Board"
	if name, ok := m.projects[m.projectID]; ok {
		title += " · " + name
	}
	clock := StyleSubtitle.Render(m.now().Format("Mon Jan 2, 15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, StyleTitle.Render(title), "  ", clock) + "\n"
}

func (m *BoardModel) renderColumn(idx int, status model.TaskStatus, width int) string {
	var b strings.Builder
	b.WriteString(ColumnHeader(status, len(m.columns[idx])))
	b.WriteString("\n")

	for row, t := range m.columns[idx] {
		b.WriteString("\n")
		b.WriteString(m.renderCard(t, idx == m.col && row == m.row, width-4))
	}

	style := StyleColumn
	if idx == m.col {
		style = StyleColumnFocused
	}
	return style.Width(width).Render(b.String())
}

func (m *BoardModel) renderCard(t *model.Task, selected bool, width int) string {
	var lines []string
	inner := max(width-4, 8)
	lines = append(lines, StyleTask.Render(validate.TruncateString(t.Name, inner)))
	if m.projectID == "" {
		lines = append(lines, StyleSubtitle.Render(validate.TruncateString(m.projects[t.ProjectID], inner)))
	}

	spent := output.FormatHours(t.TimeSpent)
	if t.TimeEstimated > 0 {
		spent += " / " + output.FormatHours(t.TimeEstimated)
	}
	lines = append(lines, StyleDuration.Render(spent))

	if t.TimeEstimated > 0 {
		lines = append(lines, ProgressBar(float64(metrics.TaskProgress(t)), min(width-2, 20)))
	}
	if m.session.Timers.IsRunning(t.ID) {
		lines = append(lines, StyleRunning.Render("● "+timer.FormatClock(m.session.Timers.Elapsed(t.ID))))
	}

	style := StyleCard
	if selected {
		style = StyleCardSelected
	}
	return style.Render(strings.Join(lines, "\n"))
}

// label names a task, prefixed by its project unless the board is filtered.
func (m *BoardModel) label(t *model.Task) string {
	if m.projectID != "" {
		return FormatProjectTask("", t.Name)
	}
	return FormatProjectTask(m.projects[t.ProjectID], t.Name)
}

func (m *BoardModel) setMessage(msg string) {
	m.message = msg
	m.messageExp = m.now().Add(3 * time.Second)
}

func (m *BoardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *BoardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// RunBoard starts the board TUI and blocks until the user quits.
func RunBoard(cfg BoardConfig) error {
	p := tea.NewProgram(NewBoardModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
