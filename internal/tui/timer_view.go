package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/store"
	"github.com/manav03panchal/workflowr/internal/timer"
)

// Outcome says how a timer session ended.
type Outcome int

const (
	// OutcomeRecorded means elapsed time was added to the task.
	OutcomeRecorded Outcome = iota
	// OutcomeCancelled means the running log was discarded.
	OutcomeCancelled
)

// TimerConfig holds configuration for the timer view.
type TimerConfig struct {
	Session         *store.Session
	TaskID          string
	RefreshInterval time.Duration
	UseColor        bool
}

// TimerModel runs one task's timer. The tick only re-renders; accounting
// happens on pause.
type TimerModel struct {
	session *store.Session
	task    *model.Task
	project string

	display  *timer.Display
	keys     timerKeys
	interval time.Duration

	logs    []*model.TimeLog
	outcome Outcome
	err     error
	width   int
}

// NewTimerModel starts the task's timer and returns the view.
func NewTimerModel(cfg TimerConfig) (*TimerModel, error) {
	task, ok := cfg.Session.Tasks.Get(cfg.TaskID)
	if !ok {
		return nil, errors.Wrapf(errors.ErrTaskNotFound, "task %s", cfg.TaskID)
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Second
	}

	var project string
	if p, ok := cfg.Session.Projects.Get(task.ProjectID); ok {
		project = p.Name
	}

	display := timer.NewDisplay()
	display.UseColor = cfg.UseColor

	cfg.Session.Timers.Start(task.ID)
	return &TimerModel{
		session:  cfg.Session,
		task:     task,
		project:  project,
		display:  display,
		keys:     newTimerKeys(),
		interval: cfg.RefreshInterval,
	}, nil
}

// Init initializes the model.
func (m *TimerModel) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model.
func (m *TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, m.tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.session.Timers.Reset(m.task.ID)
			m.outcome = OutcomeCancelled
			return m, tea.Quit

		case key.Matches(msg, m.keys.Finish), key.Matches(msg, m.keys.Quit):
			if !m.pause() {
				return m, nil
			}
			m.outcome = OutcomeRecorded
			return m, tea.Quit

		case key.Matches(msg, m.keys.Toggle):
			if m.session.Timers.IsRunning(m.task.ID) {
				m.pause()
			} else {
				m.session.Timers.Start(m.task.ID)
			}
			return m, nil
		}
	}
	return m, nil
}

// pause records the running interval. On failure the timer keeps running
// and the view stays open so the user can retry or cancel.
func (m *TimerModel) pause() bool {
	log, err := m.session.Timers.Pause(m.task.ID)
	if err != nil {
		m.err = err
		return false
	}
	m.err = nil
	if log != nil {
		m.logs = append(m.logs, log)
	}
	if t, ok := m.session.Tasks.Get(m.task.ID); ok {
		m.task = t
	}
	return true
}

// View renders the timer.
func (m *TimerModel) View() string {
	frame := timer.Frame{
		Task:      m.task.Name,
		Project:   m.project,
		Elapsed:   m.session.Timers.Elapsed(m.task.ID),
		Spent:     m.task.TimeSpent,
		Estimated: m.task.TimeEstimated,
		Running:   m.session.Timers.IsRunning(m.task.ID),
	}
	out := m.display.Render(frame)
	if m.err != nil {
		out += "\n\n" + StyleError.Render("Error: "+m.err.Error())
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(out)
}

// Logs returns the time logs recorded during this session.
func (m *TimerModel) Logs() []*model.TimeLog {
	return m.logs
}

// Outcome reports whether the session recorded or cancelled.
func (m *TimerModel) Outcome() Outcome {
	return m.outcome
}

// Err returns the last error from recording time.
func (m *TimerModel) Err() error {
	return m.err
}

func (m *TimerModel) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// RunTimer shows the live timer until the user pauses or cancels and
// returns the finished model.
func RunTimer(cfg TimerConfig) (*TimerModel, error) {
	m, err := NewTimerModel(cfg)
	if err != nil {
		return nil, err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		cfg.Session.Timers.Reset(cfg.TaskID)
		return nil, err
	}
	tm := final.(*TimerModel)
	return tm, tm.Err()
}
