package store

import (
	"sync"
	"time"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/validate"
)

// TaskRepository persists the task collection.
type TaskRepository interface {
	LoadTasks() ([]*model.Task, error)
	SaveTasks([]*model.Task) error
}

// TaskStore owns the task collection.
type TaskStore struct {
	mu    sync.Mutex
	repo  TaskRepository
	now   func() time.Time
	newID func() string
	tasks []*model.Task
}

// NewTaskStore creates an empty store. Call Load to read persisted data.
func NewTaskStore(repo TaskRepository, opts ...Option) *TaskStore {
	o := buildOptions(opts)
	return &TaskStore{
		repo:  repo,
		now:   o.now,
		newID: o.newID,
		tasks: []*model.Task{},
	}
}

// Load replaces the collection with the persisted one. Unreadable data is
// logged and the store starts empty.
func (s *TaskStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.LoadTasks()
	if err != nil {
		logging.Warn("tasks could not be loaded, starting empty",
			logging.KeyCollection, model.KeyTasks, logging.KeyError, err)
		tasks = []*model.Task{}
	}
	s.tasks = tasks
}

// Add validates and stores a new task with no time spent. The status
// defaults to pending.
func (s *TaskStore) Add(in model.TaskInput) (string, error) {
	validate.SanitizeTaskInput(&in)
	if err := validate.NewTask(in); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := model.NewTask(s.newID(), *in.ProjectID, *in.Name, "", 0, s.now())
	t.Apply(in)

	if err := s.commit(append(s.snapshot(), t)); err != nil {
		return "", err
	}
	logging.LogOperation("task.create", logging.KeyTask, t.ID, logging.KeyProject, t.ProjectID)
	return t.ID, nil
}

// Update applies the non-nil fields of in. TimeSpent is not editable here.
func (s *TaskStore) Update(id string, in model.TaskInput) error {
	validate.SanitizeTaskInput(&in)
	if err := validate.TaskUpdate(in); err != nil {
		return err
	}
	return s.mutate(id, "task.update", func(t *model.Task) {
		t.Apply(in)
	})
}

// UpdateStatus moves a task to another status column.
func (s *TaskStore) UpdateStatus(id string, status model.TaskStatus) error {
	if err := validate.Status(status); err != nil {
		return err
	}
	return s.mutate(id, "task.status", func(t *model.Task) {
		t.Status = status
	})
}

// UpdateTime sets the accumulated minutes of a task. Only the timer calls it.
func (s *TaskStore) UpdateTime(id string, timeSpent int) error {
	if timeSpent < 0 {
		return errors.NewUserErrorWithField("time_spent", "", "Time spent cannot be negative", "").
			Because(errors.ErrInvalidMinutes)
	}
	return s.mutate(id, "task.time", func(t *model.Task) {
		t.TimeSpent = timeSpent
	})
}

// Delete removes a task. Its time logs are left in place; use
// Session.DeleteTaskCascade to remove them too. Unknown IDs are ignored.
func (s *TaskStore) Delete(id string) error {
	return s.removeWhere("task.delete", func(t *model.Task) bool { return t.ID == id })
}

// DeleteByProject removes every task of the project and returns their IDs.
func (s *TaskStore) DeleteByProject(projectID string) ([]string, error) {
	var removed []string
	err := s.removeWhere("task.delete_by_project", func(t *model.Task) bool {
		if t.ProjectID == projectID {
			removed = append(removed, t.ID)
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// Get returns a copy of the task.
func (s *TaskStore) Get(id string) (*model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := model.IndexOf(s.tasks, id); i >= 0 {
		return s.tasks[i].Clone(), true
	}
	return nil, false
}

// List returns copies of all tasks in creation order.
func (s *TaskStore) List() []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.tasks)
}

// ListByProject returns the tasks of one project.
func (s *TaskStore) ListByProject(projectID string) []*model.Task {
	return s.filter(func(t *model.Task) bool { return t.ProjectID == projectID })
}

// ListByStatus returns the tasks of one project in one status column.
func (s *TaskStore) ListByStatus(projectID string, status model.TaskStatus) []*model.Task {
	return s.filter(func(t *model.Task) bool {
		return t.ProjectID == projectID && t.Status == status
	})
}

// Reset empties the collection and its persisted record.
func (s *TaskStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit([]*model.Task{})
}

func (s *TaskStore) filter(keep func(*model.Task) bool) []*model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*model.Task
	for _, t := range s.tasks {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	return out
}

// mutate applies change to a copy of the task, bumps UpdatedAt and commits.
func (s *TaskStore) mutate(id, op string, change func(*model.Task)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.IndexOf(s.tasks, id)
	if i < 0 {
		return errors.Wrapf(errors.ErrTaskNotFound, "task %s", id)
	}

	updated := s.snapshot()
	t := updated[i].Clone()
	change(t)
	t.UpdatedAt = s.now()
	updated[i] = t

	if err := s.commit(updated); err != nil {
		return err
	}
	logging.LogOperation(op, logging.KeyTask, id)
	return nil
}

func (s *TaskStore) removeWhere(op string, match func(*model.Task) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]*model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !match(t) {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	if removed == 0 {
		return nil
	}
	if err := s.commit(kept); err != nil {
		return err
	}
	logging.LogOperation(op, logging.KeyCount, removed)
	return nil
}

func (s *TaskStore) snapshot() []*model.Task {
	out := make([]*model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) commit(tasks []*model.Task) error {
	if err := s.repo.SaveTasks(tasks); err != nil {
		return errors.WithContext(err, "save tasks")
	}
	s.tasks = tasks
	return nil
}
