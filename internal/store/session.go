package store

import (
	"strings"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/storage"
	"github.com/manav03panchal/workflowr/internal/timer"
)

// Session wires the three stores to one repository.
type Session struct {
	Projects *ProjectStore
	Tasks    *TaskStore
	Timers   *timer.Store

	repo storage.Repository
}

// NewSession builds the stores over repo. Call Load before use.
func NewSession(repo storage.Repository, opts ...Option) *Session {
	o := buildOptions(opts)
	tasks := NewTaskStore(repo, opts...)
	return &Session{
		Projects: NewProjectStore(repo, opts...),
		Tasks:    tasks,
		Timers:   timer.NewStore(repo, tasks, o.now, o.newID),
		repo:     repo,
	}
}

// Open builds a session and loads every collection.
func Open(repo storage.Repository, opts ...Option) *Session {
	s := NewSession(repo, opts...)
	s.Load()
	return s
}

// Load reads every collection. Each one degrades to empty independently.
func (s *Session) Load() {
	s.Projects.Load()
	s.Tasks.Load()
	s.Timers.Load()
}

// Close releases the repository.
func (s *Session) Close() error {
	return s.repo.Close()
}

// AddTask creates a task after checking that its project exists.
func (s *Session) AddTask(in model.TaskInput) (string, error) {
	if in.ProjectID != nil {
		id := strings.TrimSpace(*in.ProjectID)
		if _, ok := s.Projects.Get(id); id != "" && !ok {
			return "", errors.Wrapf(errors.ErrProjectNotFound, "project %s", id)
		}
	}
	return s.Tasks.Add(in)
}

// MoveTask changes a task's project after checking that the target exists.
func (s *Session) MoveTask(taskID string, in model.TaskInput) error {
	if in.ProjectID != nil {
		if _, ok := s.Projects.Get(*in.ProjectID); !ok {
			return errors.Wrapf(errors.ErrProjectNotFound, "project %s", *in.ProjectID)
		}
	}
	return s.Tasks.Update(taskID, in)
}

// DeleteTaskCascade removes a task's time logs, then the task.
func (s *Session) DeleteTaskCascade(taskID string) error {
	if err := s.Timers.DeleteForTask(taskID); err != nil {
		return err
	}
	return s.Tasks.Delete(taskID)
}

// DeleteProjectCascade removes the time logs of each of the project's
// tasks, the tasks, then the project.
func (s *Session) DeleteProjectCascade(projectID string) error {
	for _, t := range s.Tasks.ListByProject(projectID) {
		if err := s.Timers.DeleteForTask(t.ID); err != nil {
			return err
		}
	}
	removed, err := s.Tasks.DeleteByProject(projectID)
	if err != nil {
		return err
	}
	if err := s.Projects.Delete(projectID); err != nil {
		return err
	}
	logging.LogOperation("project.delete_cascade", logging.KeyProject, projectID, logging.KeyCount, len(removed))
	return nil
}

// ResetAll empties every store and clears the repository.
func (s *Session) ResetAll() error {
	s.Timers.ResetAll()
	if err := s.Projects.Reset(); err != nil {
		return err
	}
	if err := s.Tasks.Reset(); err != nil {
		return err
	}
	if err := s.repo.Clear(); err != nil {
		return err
	}
	logging.Info("all data reset")
	return nil
}

// IsEmpty reports whether nothing has been stored yet.
func (s *Session) IsEmpty() (bool, error) {
	keys, err := s.repo.Stored()
	if err != nil {
		return false, err
	}
	return len(keys) == 0, nil
}

// Orphans returns tasks whose project no longer exists.
func (s *Session) Orphans() []*model.Task {
	var out []*model.Task
	for _, t := range s.Tasks.List() {
		if _, ok := s.Projects.Get(t.ProjectID); !ok {
			out = append(out, t)
		}
	}
	return out
}
