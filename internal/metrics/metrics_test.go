package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workflowr/internal/model"
)

var now = time.Date(2026, 5, 7, 15, 30, 0, 0, time.UTC) // Thursday

func task(id, projectID string, status model.TaskStatus, est, spent int, updated time.Time) *model.Task {
	return &model.Task{
		ID:            id,
		ProjectID:     projectID,
		Name:          id,
		Status:        status,
		TimeEstimated: est,
		TimeSpent:     spent,
		UpdatedAt:     updated,
	}
}

func fixture() ([]*model.Project, []*model.Task) {
	projects := []*model.Project{
		{ID: "p1", Name: "Site", Rate: 100},
		{ID: "p2", Name: "App", Rate: 60},
		{ID: "p3", Name: "Idle", Rate: 80},
	}
	tasks := []*model.Task{
		task("t1", "p1", model.StatusDone, 120, 45, now),
		task("t2", "p1", model.StatusInProgress, 0, 30, now.Add(-24*time.Hour)),
		task("t3", "p2", model.StatusPending, 60, 90, now.Add(-6*24*time.Hour)),
		task("t4", "gone", model.StatusDone, 30, 60, now.Add(-7*24*time.Hour)),
	}
	return projects, tasks
}

// =============================================================================
// Totals Tests
// =============================================================================

func TestProjectTotals(t *testing.T) {
	projects, tasks := fixture()

	assert.Equal(t, 75, ProjectTotalMinutes("p1", tasks))
	assert.Equal(t, 0, ProjectTotalMinutes("p3", tasks))
	assert.InDelta(t, 125.0, ProjectTotalValue(projects[0], tasks), 1e-9)
	assert.InDelta(t, 90.0, ProjectTotalValue(projects[1], tasks), 1e-9)
}

func TestProjectValueLinear(t *testing.T) {
	p := &model.Project{ID: "p", Rate: 100}
	for _, spent := range []int{0, 15, 45, 60, 600} {
		tasks := []*model.Task{{ProjectID: "p", TimeSpent: spent}}
		assert.InDelta(t, float64(spent)/60*100, ProjectTotalValue(p, tasks), 1e-9)
	}
}

func TestTotalValueSkipsMissingProjects(t *testing.T) {
	projects, tasks := fixture()
	assert.InDelta(t, 215.0, TotalValue(projects, tasks), 1e-9)
	assert.Zero(t, TotalValue(nil, tasks))
}

// =============================================================================
// Efficiency Tests
// =============================================================================

func TestTaskEfficiency(t *testing.T) {
	tests := []struct {
		name   string
		task   *model.Task
		want   float64
		wantOK bool
	}{
		{"faster_than_estimate_capped", task("a", "p", model.StatusDone, 60, 30, now), 100, true},
		{"slower_than_estimate", task("a", "p", model.StatusDone, 60, 120, now), 50, true},
		{"exact", task("a", "p", model.StatusDone, 60, 60, now), 100, true},
		{"not_done", task("a", "p", model.StatusInProgress, 60, 120, now), 0, false},
		{"no_estimate", task("a", "p", model.StatusDone, 0, 120, now), 0, false},
		{"no_time", task("a", "p", model.StatusDone, 60, 0, now), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TaskEfficiency(tt.task)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestAverageEfficiency(t *testing.T) {
	tasks := []*model.Task{
		task("a", "p", model.StatusDone, 60, 30, now),
		task("b", "p", model.StatusDone, 60, 120, now),
		task("c", "p", model.StatusPending, 60, 120, now),
	}
	avg, ok := AverageEfficiency(tasks)
	require.True(t, ok)
	assert.InDelta(t, 75.0, avg, 1e-9)

	_, ok = AverageEfficiency(tasks[2:])
	assert.False(t, ok)
}

func TestTaskProgress(t *testing.T) {
	assert.Equal(t, 38, TaskProgress(task("a", "p", model.StatusPending, 120, 45, now)))
	assert.Equal(t, 100, TaskProgress(task("a", "p", model.StatusPending, 60, 90, now)))
	assert.Equal(t, 100, TaskProgress(task("a", "p", model.StatusPending, 0, 5, now)))
	assert.Equal(t, 0, TaskProgress(task("a", "p", model.StatusPending, 0, 0, now)))
}

// =============================================================================
// Weekly Tests
// =============================================================================

func TestWeeklyProductivity(t *testing.T) {
	_, tasks := fixture()
	week := WeeklyProductivity(tasks, now)

	require.Len(t, week, 7)
	labels := make([]string, len(week))
	for i, d := range week {
		labels[i] = d.Label
	}
	assert.Equal(t, []string{"Fri", "Sat", "Sun", "Mon", "Tue", "Wed", "Thu"}, labels)

	assert.Equal(t, 90, week[0].Minutes, "six days ago")
	assert.Equal(t, 30, week[5].Minutes, "yesterday")
	assert.Equal(t, 45, week[6].Minutes, "today")
	assert.Equal(t, time.Date(2026, 5, 7, 0, 0, 0, 0, time.UTC), week[6].Date)

	var total int
	for _, d := range week {
		total += d.Minutes
	}
	assert.Equal(t, 165, total, "eight-day-old task falls outside the window")
}

func TestWeeklyProductivityUsesNowLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	localNow := time.Date(2026, 5, 7, 1, 0, 0, 0, loc)
	// 03:00 UTC on the 7th is 22:00 local on the 6th.
	tasks := []*model.Task{task("a", "p", model.StatusDone, 0, 20, time.Date(2026, 5, 7, 3, 0, 0, 0, time.UTC))}

	week := WeeklyProductivity(tasks, localNow)
	assert.Equal(t, 0, week[6].Minutes)
	assert.Equal(t, 20, week[5].Minutes)
}

// =============================================================================
// Breakdown Tests
// =============================================================================

func TestStatusCounts(t *testing.T) {
	_, tasks := fixture()

	all := StatusCounts(tasks, "")
	assert.Equal(t, 2, all[model.StatusDone])
	assert.Equal(t, 1, all[model.StatusInProgress])
	assert.Equal(t, 1, all[model.StatusPending])

	p1 := StatusCounts(tasks, "p1")
	assert.Equal(t, 1, p1[model.StatusDone])
	assert.Equal(t, 0, p1[model.StatusPending])
	assert.Len(t, p1, 3)
}

func TestProjectDistribution(t *testing.T) {
	projects, tasks := fixture()
	shares := ProjectDistribution(projects, tasks)

	require.Len(t, shares, 2)
	assert.Equal(t, "App", shares[0].Name)
	assert.Equal(t, 90, shares[0].Minutes)
	assert.Equal(t, "Site", shares[1].Name)
	assert.InDelta(t, 125.0, shares[1].Value, 1e-9)
}

func TestDashboard(t *testing.T) {
	projects, tasks := fixture()
	s := Dashboard(projects, tasks, now)

	assert.Equal(t, 3, s.Projects)
	assert.Equal(t, 4, s.Tasks)
	assert.Equal(t, 2, s.CompletedTasks)
	assert.Equal(t, 225, s.TotalMinutes)
	assert.InDelta(t, 215.0, s.TotalValue, 1e-9)
	assert.Len(t, s.Weekly, 7)
}

func TestFilterByProject(t *testing.T) {
	_, tasks := fixture()
	assert.Len(t, FilterByProject(tasks, ""), 4)
	assert.Len(t, FilterByProject(tasks, "p1"), 2)
	assert.Empty(t, FilterByProject(tasks, "none"))
}
