package timer

import (
	"sort"
	"sync"
	"time"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/model"
)

// HistoryRepository persists completed time logs.
type HistoryRepository interface {
	LoadTimeHistory() ([]*model.TimeLog, error)
	SaveTimeHistory([]*model.TimeLog) error
}

// TaskTimeUpdater is the slice of the task store the timer writes through.
type TaskTimeUpdater interface {
	Get(id string) (*model.Task, bool)
	UpdateTime(id string, timeSpent int) error
}

// Store holds active logs (memory only) and the persisted history.
// Each task is independently Idle or Running.
type Store struct {
	mu      sync.Mutex
	repo    HistoryRepository
	tasks   TaskTimeUpdater
	now     func() time.Time
	newID   func() string
	active  map[string]*model.TimeLog
	history []*model.TimeLog
}

// NewStore creates an empty timer store. Call Load to read the history.
func NewStore(repo HistoryRepository, tasks TaskTimeUpdater, now func() time.Time, newID func() string) *Store {
	return &Store{
		repo:    repo,
		tasks:   tasks,
		now:     now,
		newID:   newID,
		active:  make(map[string]*model.TimeLog),
		history: []*model.TimeLog{},
	}
}

// Load reads the persisted history. Active logs always start empty. A
// history that cannot be read is logged and treated as empty.
func (s *Store) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make(map[string]*model.TimeLog)
	logs, err := s.repo.LoadTimeHistory()
	if err != nil {
		logging.Warn("time history could not be loaded, starting empty",
			logging.KeyCollection, model.KeyTimeHistory, logging.KeyError, err)
		logs = []*model.TimeLog{}
	}
	s.history = logs
}

// State returns the task's current timer state.
func (s *Store) State(taskID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log, ok := s.active[taskID]; ok {
		return Running{Log: log.Clone()}
	}
	return Idle{}
}

// Start opens an active log for the task. Starting a running timer keeps
// the original start time.
func (s *Store) Start(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.active[taskID]; ok {
		return
	}
	s.active[taskID] = model.NewActiveLog(s.newID(), taskID, s.now())
	logging.LogOperation("timer.start", logging.KeyTask, taskID)
}

// Pause closes the active log, appends it to the history and adds the
// rounded elapsed minutes to the task. Pausing an idle timer returns
// (nil, nil). The completed log is recorded even when it rounds to zero.
// If either write fails the timer keeps running from its original start.
func (s *Store) Pause(taskID string) (*model.TimeLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active, ok := s.active[taskID]
	if !ok {
		return nil, nil
	}

	completed := active.Complete(s.now())
	if err := s.record(completed); err != nil {
		return nil, err
	}
	delete(s.active, taskID)
	logging.LogOperation("timer.pause", logging.KeyTask, taskID, logging.KeyMinutes, completed.Duration)
	return completed, nil
}

// Reset discards the active log without touching history or the task.
func (s *Store) Reset(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, taskID)
}

// AddManualTime records a synthesized log of the given minutes ending now
// and adds them to the task. Non-positive minutes are ignored. A running
// timer for the task is not affected.
func (s *Store) AddManualTime(taskID string, minutes int) (*model.TimeLog, error) {
	if minutes <= 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	end := s.now()
	log := model.NewActiveLog(s.newID(), taskID, end.Add(-time.Duration(minutes)*time.Minute))
	log.EndTime = &end
	log.Duration = minutes

	if err := s.record(log); err != nil {
		return nil, err
	}
	logging.LogOperation("timer.manual", logging.KeyTask, taskID, logging.KeyMinutes, minutes)
	return log, nil
}

// ElapsedMinutes returns the live rounded minutes of a running timer, or 0.
func (s *Store) ElapsedMinutes(taskID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if log, ok := s.active[taskID]; ok {
		return model.ElapsedMinutes(log.StartTime, s.now())
	}
	return 0
}

// Elapsed returns the precise running duration, for live displays.
func (s *Store) Elapsed(taskID string) time.Duration {
	if r, ok := s.State(taskID).(Running); ok {
		return r.Since(s.now())
	}
	return 0
}

// IsRunning reports whether the task has an active log.
func (s *Store) IsRunning(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.active[taskID]
	return ok
}

// Running returns the IDs of tasks with active timers, sorted.
func (s *Store) Running() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LogsForTask returns the completed logs of a task in recording order.
func (s *Store) LogsForTask(taskID string) []*model.TimeLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []*model.TimeLog
	for _, l := range s.history {
		if l.TaskID == taskID {
			logs = append(logs, l.Clone())
		}
	}
	return logs
}

// History returns every completed log in recording order.
func (s *Store) History() []*model.TimeLog {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := make([]*model.TimeLog, len(s.history))
	for i, l := range s.history {
		logs[i] = l.Clone()
	}
	return logs
}

// DeleteForTask drops the task's active log and its history.
func (s *Store) DeleteForTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.active, taskID)

	kept := make([]*model.TimeLog, 0, len(s.history))
	for _, l := range s.history {
		if l.TaskID != taskID {
			kept = append(kept, l)
		}
	}
	if err := s.repo.SaveTimeHistory(kept); err != nil {
		return errors.WithContext(err, "delete time logs")
	}
	s.history = kept
	return nil
}

// ResetAll clears every active log and the history. The caller clears the
// persisted record.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = make(map[string]*model.TimeLog)
	s.history = []*model.TimeLog{}
}

// record saves the log to the history, then adds its minutes to the task.
// A failed task update rolls the history back so both stay unchanged.
func (s *Store) record(log *model.TimeLog) error {
	previous := s.history
	if err := s.appendHistory(log); err != nil {
		return err
	}
	if log.Duration == 0 {
		return nil
	}
	if err := s.addToTask(log.TaskID, log.Duration); err != nil {
		if rerr := s.repo.SaveTimeHistory(previous); rerr != nil {
			logging.Warn("time history rollback failed",
				logging.KeyTask, log.TaskID, logging.KeyError, rerr)
		}
		s.history = previous
		return err
	}
	return nil
}

// addToTask adds minutes to the task's TimeSpent. A missing task is
// skipped, matching a timer left behind by a deleted task.
func (s *Store) addToTask(taskID string, minutes int) error {
	task, ok := s.tasks.Get(taskID)
	if !ok {
		logging.Warn("timer recorded time for unknown task", logging.KeyTask, taskID)
		return nil
	}
	return s.tasks.UpdateTime(taskID, task.TimeSpent+minutes)
}

func (s *Store) appendHistory(log *model.TimeLog) error {
	updated := make([]*model.TimeLog, len(s.history), len(s.history)+1)
	copy(updated, s.history)
	updated = append(updated, log)

	if err := s.repo.SaveTimeHistory(updated); err != nil {
		return errors.WithContext(err, "save time history")
	}
	s.history = updated
	return nil
}
