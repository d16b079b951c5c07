package output

import (
	"time"

	"github.com/manav03panchal/workflowr/internal/model"
)

// ProjectOutput is the JSON shape of a project with its derived totals.
type ProjectOutput struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ClientName   string    `json:"client_name,omitempty"`
	Rate         float64   `json:"rate"`
	TotalMinutes int       `json:"total_minutes"`
	TotalValue   float64   `json:"total_value"`
	TaskCount    int       `json:"task_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewProjectOutput builds the JSON view of p.
func NewProjectOutput(p *model.Project, totalMinutes, taskCount int, totalValue float64) ProjectOutput {
	return ProjectOutput{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		ClientName:   p.ClientName,
		Rate:         p.Rate,
		TotalMinutes: totalMinutes,
		TotalValue:   totalValue,
		TaskCount:    taskCount,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// TaskOutput is the JSON shape of a task.
type TaskOutput struct {
	ID            string   `json:"id"`
	ProjectID     string   `json:"project_id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Status        string   `json:"status"`
	TimeEstimated int      `json:"time_estimated"`
	TimeSpent     int      `json:"time_spent"`
	Efficiency    *float64 `json:"efficiency,omitempty"`
	Running       bool     `json:"running"`
	UpdatedAt     string   `json:"updated_at"`
}

// NewTaskOutput builds the JSON view of t. efficiency is nil when undefined.
func NewTaskOutput(t *model.Task, efficiency *float64, running bool) TaskOutput {
	return TaskOutput{
		ID:            t.ID,
		ProjectID:     t.ProjectID,
		Name:          t.Name,
		Description:   t.Description,
		Status:        string(t.Status),
		TimeEstimated: t.TimeEstimated,
		TimeSpent:     t.TimeSpent,
		Efficiency:    efficiency,
		Running:       running,
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
}

// TimeLogOutput is the JSON shape of a completed time log.
type TimeLogOutput struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
	Duration  int    `json:"duration_minutes"`
}

// NewTimeLogOutput builds the JSON view of l.
func NewTimeLogOutput(l *model.TimeLog) TimeLogOutput {
	out := TimeLogOutput{
		ID:        l.ID,
		TaskID:    l.TaskID,
		StartTime: l.StartTime.Format(time.RFC3339),
		Duration:  l.Duration,
	}
	if l.EndTime != nil {
		out.EndTime = l.EndTime.Format(time.RFC3339)
	}
	return out
}

// MessageResponse is returned by mutating commands in JSON mode.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// ErrorResponse is printed instead of a result when a command fails in JSON
// mode.
type ErrorResponse struct {
	Error      string `json:"error"`
	Category   string `json:"category"`
	Op         string `json:"op,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}
