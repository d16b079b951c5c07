// Package storage persists Workflowr's three collections. Each collection
// is one record holding a JSON list, stored in badger (default), sqlite or
// memory.
package storage

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/manav03panchal/workflowr/internal/errors"
	"github.com/manav03panchal/workflowr/internal/model"
)

// Repository loads and saves whole collections.
type Repository interface {
	LoadProjects() ([]*model.Project, error)
	SaveProjects([]*model.Project) error
	LoadTasks() ([]*model.Task, error)
	SaveTasks([]*model.Task) error
	LoadTimeHistory() ([]*model.TimeLog, error)
	SaveTimeHistory([]*model.TimeLog) error
	// Stored lists the keys of the records present, sorted.
	Stored() ([]string, error)
	// Clear removes every record.
	Clear() error
	Close() error
}

// recordStore is the raw key/value surface each backend provides.
// get returns ErrKeyNotFound for a missing record.
type recordStore interface {
	get(key string) ([]byte, error)
	put(key string, data []byte) error
	remove(keys ...string) error
	keys(prefix string) ([]string, error)
	close() error
	name() string
}

// records adapts a recordStore into a Repository.
type records struct {
	store recordStore
}

func (r *records) LoadProjects() ([]*model.Project, error) {
	return load[*model.Project](r.store, model.KeyProjects)
}

func (r *records) SaveProjects(projects []*model.Project) error {
	return save(r.store, model.KeyProjects, projects)
}

func (r *records) LoadTasks() ([]*model.Task, error) {
	return load[*model.Task](r.store, model.KeyTasks)
}

func (r *records) SaveTasks(tasks []*model.Task) error {
	return save(r.store, model.KeyTasks, tasks)
}

func (r *records) LoadTimeHistory() ([]*model.TimeLog, error) {
	return load[*model.TimeLog](r.store, model.KeyTimeHistory)
}

func (r *records) SaveTimeHistory(logs []*model.TimeLog) error {
	return save(r.store, model.KeyTimeHistory, logs)
}

func (r *records) Stored() ([]string, error) {
	keys, err := r.store.keys(model.KeyPrefix)
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("list records",
			fmt.Sprintf("failed to list %s records", r.store.name()), err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *records) Clear() error {
	if err := r.store.remove(model.RecordKeys...); err != nil {
		return errors.NewSystemErrorWithOp("clear", "failed to remove records", err)
	}
	return nil
}

func (r *records) Close() error {
	return r.store.close()
}

// load decodes the list stored under key. A missing record is an empty list.
func load[T any](store recordStore, key string) ([]T, error) {
	data, err := store.get(key)
	if IsErrKeyNotFound(err) {
		return []T{}, nil
	}
	if err != nil {
		return nil, errors.NewSystemErrorWithOp("load "+key,
			fmt.Sprintf("failed to read %s record", store.name()), err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, errors.NewSystemErrorWithOp("load "+key, "corrupt record",
			fmt.Errorf("%w: %v", errors.ErrLoadFailed, err))
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func save[T any](store recordStore, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return errors.NewSystemErrorWithOp("save "+key, "failed to encode record", err)
	}
	if err := store.put(key, data); err != nil {
		return errors.NewSystemErrorWithOp("save "+key,
			fmt.Sprintf("failed to write %s record", store.name()), err)
	}
	return nil
}
