package model

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Statuses lists the task states in board column order.
var Statuses = []TaskStatus{StatusPending, StatusInProgress, StatusDone}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Label returns a human readable name for the status.
func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// ParseTaskStatus converts user input into a TaskStatus.
func ParseTaskStatus(input string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "pending", "todo":
		return StatusPending, nil
	case "in_progress", "in-progress", "inprogress", "doing":
		return StatusInProgress, nil
	case "done", "completed", "complete":
		return StatusDone, nil
	}
	return "", fmt.Errorf("unknown task status %q", input)
}

// Task is a unit of work belonging to a project.
type Task struct {
	ID            string     `json:"id"`
	ProjectID     string     `json:"projectId"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        TaskStatus `json:"status"`
	TimeEstimated int        `json:"timeEstimated"` // minutes
	TimeSpent     int        `json:"timeSpent"`     // minutes
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// GetID returns the task identifier.
func (t *Task) GetID() string {
	return t.ID
}

// Clone returns a copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// IsDone reports whether the task is completed.
func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

// TaskInput holds the user-editable task fields. TimeSpent is deliberately
// absent: only the timer changes it.
type TaskInput struct {
	ProjectID     *string
	Name          *string
	Description   *string
	Status        *TaskStatus
	TimeEstimated *int
}

// NewTask creates a pending task with no time spent.
func NewTask(id, projectID, name, description string, estimated int, now time.Time) *Task {
	return &Task{
		ID:            id,
		ProjectID:     projectID,
		Name:          name,
		Description:   description,
		Status:        StatusPending,
		TimeEstimated: estimated,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Apply copies the non-nil input fields onto the task.
func (t *Task) Apply(in TaskInput) {
	if in.ProjectID != nil {
		t.ProjectID = *in.ProjectID
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Status != nil {
		t.Status = *in.Status
	}
	if in.TimeEstimated != nil {
		t.TimeEstimated = *in.TimeEstimated
	}
}
