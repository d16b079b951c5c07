// Package metrics computes aggregates over projects and tasks. Every
// function is pure and recomputed on each call.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/manav03panchal/workflowr/internal/model"
)

// ProjectTotalMinutes sums TimeSpent over the project's tasks.
func ProjectTotalMinutes(projectID string, tasks []*model.Task) int {
	var total int
	for _, t := range tasks {
		if t.ProjectID == projectID {
			total += t.TimeSpent
		}
	}
	return total
}

// Value converts minutes at an hourly rate into money.
func Value(minutes int, rate float64) float64 {
	return float64(minutes) / 60 * rate
}

// ProjectTotalValue is the project's tracked time billed at its rate.
func ProjectTotalValue(project *model.Project, tasks []*model.Task) float64 {
	return Value(ProjectTotalMinutes(project.ID, tasks), project.Rate)
}

// TaskEfficiency compares estimate to time spent, capped at 100. It is only
// defined for done tasks with both an estimate and recorded time.
func TaskEfficiency(task *model.Task) (float64, bool) {
	if task.Status != model.StatusDone || task.TimeEstimated <= 0 || task.TimeSpent <= 0 {
		return 0, false
	}
	return math.Min(100, float64(task.TimeEstimated)/float64(task.TimeSpent)*100), true
}

// AverageEfficiency is the mean efficiency of the tasks where it is defined.
func AverageEfficiency(tasks []*model.Task) (float64, bool) {
	var sum float64
	var n int
	for _, t := range tasks {
		if e, ok := TaskEfficiency(t); ok {
			sum += e
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// TaskProgress is the share of the estimate already spent, 0..100. A task
// without an estimate reads 100 once any time is recorded.
func TaskProgress(task *model.Task) int {
	if task.TimeEstimated <= 0 {
		if task.TimeSpent > 0 {
			return 100
		}
		return 0
	}
	p := math.Round(float64(task.TimeSpent) / float64(task.TimeEstimated) * 100)
	return int(math.Min(100, p))
}

// DayTotal is one bucket of the weekly series.
type DayTotal struct {
	Date    time.Time `json:"date"`
	Label   string    `json:"label"`
	Minutes int       `json:"minutes"`
}

// WeeklyProductivity buckets TimeSpent by the calendar day of each task's
// UpdatedAt over the seven days ending today, oldest first. Days are taken
// in now's location.
func WeeklyProductivity(tasks []*model.Task, now time.Time) []DayTotal {
	loc := now.Location()
	y, m, d := now.Date()

	days := make([]DayTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		start := time.Date(y, m, d-i, 0, 0, 0, 0, loc)
		end := start.AddDate(0, 0, 1)

		var total int
		for _, t := range tasks {
			at := t.UpdatedAt.In(loc)
			if !at.Before(start) && at.Before(end) {
				total += t.TimeSpent
			}
		}
		days = append(days, DayTotal{
			Date:    start,
			Label:   start.Weekday().String()[:3],
			Minutes: total,
		})
	}
	return days
}

// StatusCounts counts tasks per status. An empty projectID counts every
// project. All known statuses are present in the result.
func StatusCounts(tasks []*model.Task, projectID string) map[model.TaskStatus]int {
	counts := make(map[model.TaskStatus]int, len(model.Statuses))
	for _, s := range model.Statuses {
		counts[s] = 0
	}
	for _, t := range FilterByProject(tasks, projectID) {
		counts[t.Status]++
	}
	return counts
}

// TotalValue sums each task's time at its own project's rate. Tasks whose
// project is gone contribute nothing.
func TotalValue(projects []*model.Project, tasks []*model.Task) float64 {
	rates := make(map[string]float64, len(projects))
	for _, p := range projects {
		rates[p.ID] = p.Rate
	}

	var total float64
	for _, t := range tasks {
		if r, ok := rates[t.ProjectID]; ok {
			total += Value(t.TimeSpent, r)
		}
	}
	return total
}

// ProjectShare is one project's slice of tracked time.
type ProjectShare struct {
	ProjectID string  `json:"projectId"`
	Name      string  `json:"name"`
	Minutes   int     `json:"minutes"`
	Value     float64 `json:"value"`
}

// ProjectDistribution lists projects with tracked time, most time first.
// Ties keep project order.
func ProjectDistribution(projects []*model.Project, tasks []*model.Task) []ProjectShare {
	var shares []ProjectShare
	for _, p := range projects {
		mins := ProjectTotalMinutes(p.ID, tasks)
		if mins <= 0 {
			continue
		}
		shares = append(shares, ProjectShare{
			ProjectID: p.ID,
			Name:      p.Name,
			Minutes:   mins,
			Value:     Value(mins, p.Rate),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Minutes > shares[j].Minutes
	})
	return shares
}

// Summary holds the headline numbers of the dashboard.
type Summary struct {
	Projects       int        `json:"projects"`
	Tasks          int        `json:"tasks"`
	CompletedTasks int        `json:"completedTasks"`
	TotalMinutes   int        `json:"totalMinutes"`
	TotalValue     float64    `json:"totalValue"`
	Weekly         []DayTotal `json:"weekly"`
}

// Dashboard computes the overview totals.
func Dashboard(projects []*model.Project, tasks []*model.Task, now time.Time) Summary {
	s := Summary{
		Projects:   len(projects),
		Tasks:      len(tasks),
		TotalValue: TotalValue(projects, tasks),
		Weekly:     WeeklyProductivity(tasks, now),
	}
	for _, t := range tasks {
		s.TotalMinutes += t.TimeSpent
		if t.IsDone() {
			s.CompletedTasks++
		}
	}
	return s
}

// FilterByProject returns the project's tasks, or all tasks when projectID
// is empty.
func FilterByProject(tasks []*model.Task, projectID string) []*model.Task {
	if projectID == "" {
		return tasks
	}
	var out []*model.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}
