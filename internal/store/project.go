package store

import (
	"sync"
	"time"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/logging"
	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/validate"
)

// ProjectRepository persists the project collection.
type ProjectRepository interface {
	LoadProjects() ([]*model.Project, error)
	SaveProjects([]*model.Project) error
}

// ProjectStore owns the project collection.
type ProjectStore struct {
	mu       sync.Mutex
	repo     ProjectRepository
	now      func() time.Time
	newID    func() string
	projects []*model.Project
}

// NewProjectStore creates an empty store. Call Load to read persisted data.
func NewProjectStore(repo ProjectRepository, opts ...Option) *ProjectStore {
	o := buildOptions(opts)
	return &ProjectStore{
		repo:     repo,
		now:      o.now,
		newID:    o.newID,
		projects: []*model.Project{},
	}
}

// Load replaces the collection with the persisted one. Unreadable data is
// logged and the store starts empty.
func (s *ProjectStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, err := s.repo.LoadProjects()
	if err != nil {
		logging.Warn("projects could not be loaded, starting empty",
			logging.KeyCollection, model.KeyProjects, logging.KeyError, err)
		projects = []*model.Project{}
	}
	s.projects = projects
}

// Add validates and stores a new project, returning its ID.
func (s *ProjectStore) Add(in model.ProjectInput) (string, error) {
	validate.SanitizeProjectInput(&in)
	if err := validate.NewProject(in); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := model.NewProject(s.newID(), *in.Name, "", "", 0, s.now())
	p.Apply(in)

	if err := s.commit(append(s.snapshot(), p)); err != nil {
		return "", err
	}
	logging.LogOperation("project.create", logging.KeyProject, p.ID)
	return p.ID, nil
}

// Update applies the non-nil fields of in and bumps UpdatedAt.
func (s *ProjectStore) Update(id string, in model.ProjectInput) error {
	validate.SanitizeProjectInput(&in)
	if err := validate.ProjectUpdate(in); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.IndexOf(s.projects, id)
	if i < 0 {
		return errors.Wrapf(errors.ErrProjectNotFound, "project %s", id)
	}

	updated := s.snapshot()
	p := updated[i].Clone()
	p.Apply(in)
	p.UpdatedAt = s.now()
	updated[i] = p

	if err := s.commit(updated); err != nil {
		return err
	}
	logging.LogOperation("project.update", logging.KeyProject, id)
	return nil
}

// Delete removes the project only. Its tasks are left in place; use
// Session.DeleteProjectCascade to remove them too. Unknown IDs are ignored.
func (s *ProjectStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := model.IndexOf(s.projects, id)
	if i < 0 {
		return nil
	}
	updated := make([]*model.Project, 0, len(s.projects)-1)
	updated = append(updated, s.projects[:i]...)
	updated = append(updated, s.projects[i+1:]...)
	if err := s.commit(updated); err != nil {
		return err
	}
	logging.LogOperation("project.delete", logging.KeyProject, id)
	return nil
}

// Get returns a copy of the project.
func (s *ProjectStore) Get(id string) (*model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := model.IndexOf(s.projects, id); i >= 0 {
		return s.projects[i].Clone(), true
	}
	return nil, false
}

// List returns copies of all projects in creation order.
func (s *ProjectStore) List() []*model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.projects)
}

// Reset empties the collection and its persisted record.
func (s *ProjectStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit([]*model.Project{})
}

func (s *ProjectStore) snapshot() []*model.Project {
	out := make([]*model.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// commit persists the new collection and swaps it in only on success.
func (s *ProjectStore) commit(projects []*model.Project) error {
	if err := s.repo.SaveProjects(projects); err != nil {
		return errors.WithContext(err, "save projects")
	}
	s.projects = projects
	return nil
}
