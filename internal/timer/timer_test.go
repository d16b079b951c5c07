package timer

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workflowr/internal/model"
	"github.com/manav03panchal/workflowr/internal/storage"
)

// fakeClock is advanced by tests to make elapsed-minute arithmetic exact.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeTasks records UpdateTime calls against an in-memory task map.
type fakeTasks struct {
	tasks   map[string]*model.Task
	updates int
	err     error
}

func (f *fakeTasks) Get(id string) (*model.Task, bool) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (f *fakeTasks) UpdateTime(id string, spent int) error {
	if f.err != nil {
		return f.err
	}
	f.updates++
	f.tasks[id].TimeSpent = spent
	return nil
}

type fixture struct {
	store *Store
	clock *fakeClock
	tasks *fakeTasks
	repo  *storage.MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	start := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	tasks := &fakeTasks{tasks: map[string]*model.Task{
		"t1": model.NewTask("t1", "p1", "Design", "", 120, start),
		"t2": model.NewTask("t2", "p1", "Build", "", 0, start),
	}}
	repo := storage.NewMemoryRepository()

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("log-%d", n)
	}

	s := NewStore(repo, tasks, clock.Now, newID)
	s.Load()
	return &fixture{store: s, clock: clock, tasks: tasks, repo: repo}
}

// =============================================================================
// State Machine Tests
// =============================================================================

func TestStartAndState(t *testing.T) {
	f := newFixture(t)

	assert.IsType(t, Idle{}, f.store.State("t1"))
	assert.False(t, f.store.IsRunning("t1"))

	f.store.Start("t1")
	st := f.store.State("t1")
	running, ok := st.(Running)
	require.True(t, ok)
	assert.True(t, st.Running())
	assert.Equal(t, "t1", running.Log.TaskID)
	assert.Equal(t, 0, running.Log.Duration)
	assert.True(t, running.Log.IsActive())
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t)

	f.store.Start("t1")
	first := f.store.State("t1").(Running).Log.StartTime

	f.clock.Advance(10 * time.Minute)
	f.store.Start("t1")

	assert.Equal(t, first, f.store.State("t1").(Running).Log.StartTime)
	assert.Equal(t, 10, f.store.ElapsedMinutes("t1"))
}

func TestPauseRecordsWholeMinutes(t *testing.T) {
	f := newFixture(t)

	f.store.Start("t1")
	f.clock.Advance(45 * time.Minute)

	log, err := f.store.Pause("t1")
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, 45, log.Duration)
	require.NotNil(t, log.EndTime)

	assert.Equal(t, 45, f.tasks.tasks["t1"].TimeSpent)
	assert.IsType(t, Idle{}, f.store.State("t1"))

	history := f.store.History()
	require.Len(t, history, 1)
	assert.Equal(t, 45, history[0].Duration)

	persisted, err := f.repo.LoadTimeHistory()
	require.NoError(t, err)
	assert.Len(t, persisted, 1)
}

func TestPauseRounding(t *testing.T) {
	tests := []struct {
		name      string
		elapsed   time.Duration
		wantMins  int
		wantSpent int
	}{
		{"under_half_minute", 29 * time.Second, 0, 0},
		{"half_minute_rounds_up", 30 * time.Second, 1, 1},
		{"ninety_seconds", 90 * time.Second, 2, 2},
		{"two_minutes_twenty", 2*time.Minute + 20*time.Second, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Start("t2")
			f.clock.Advance(tt.elapsed)

			log, err := f.store.Pause("t2")
			require.NoError(t, err)
			assert.Equal(t, tt.wantMins, log.Duration)
			assert.Equal(t, tt.wantSpent, f.tasks.tasks["t2"].TimeSpent)
			// A zero-minute interval is still recorded.
			assert.Len(t, f.store.LogsForTask("t2"), 1)
		})
	}
}

func TestPauseZeroMinutesSkipsTaskUpdate(t *testing.T) {
	f := newFixture(t)
	f.store.Start("t1")
	f.clock.Advance(10 * time.Second)

	_, err := f.store.Pause("t1")
	require.NoError(t, err)
	assert.Equal(t, 0, f.tasks.updates)
}

func TestPauseIdleIsNoop(t *testing.T) {
	f := newFixture(t)

	log, err := f.store.Pause("t1")
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.Empty(t, f.store.History())
	assert.Equal(t, 0, f.tasks.updates)
}

func TestResetDiscards(t *testing.T) {
	f := newFixture(t)

	f.store.Start("t1")
	f.clock.Advance(30 * time.Minute)
	f.store.Reset("t1")

	assert.False(t, f.store.IsRunning("t1"))
	assert.Equal(t, 0, f.store.ElapsedMinutes("t1"))
	assert.Equal(t, 0, f.tasks.tasks["t1"].TimeSpent)
	assert.Empty(t, f.store.History())
	assert.Nil(t, f.repo.Raw(model.KeyTimeHistory))
}

func TestIndependentTimers(t *testing.T) {
	f := newFixture(t)

	f.store.Start("t2")
	f.store.Start("t1")
	assert.Equal(t, []string{"t1", "t2"}, f.store.Running())

	f.clock.Advance(20 * time.Minute)
	_, err := f.store.Pause("t1")
	require.NoError(t, err)

	assert.True(t, f.store.IsRunning("t2"))
	assert.Equal(t, 20, f.store.ElapsedMinutes("t2"))
	assert.Equal(t, []string{"t2"}, f.store.Running())
}

func TestPauseUnknownTask(t *testing.T) {
	f := newFixture(t)

	f.store.Start("ghost")
	f.clock.Advance(5 * time.Minute)
	log, err := f.store.Pause("ghost")
	require.NoError(t, err)
	assert.Equal(t, 5, log.Duration)
	assert.Len(t, f.store.LogsForTask("ghost"), 1)
}

func TestPauseTaskUpdateFailure(t *testing.T) {
	f := newFixture(t)
	f.tasks.err = fmt.Errorf("write failed")

	f.store.Start("t1")
	started := f.clock.Now()
	f.clock.Advance(5 * time.Minute)
	_, err := f.store.Pause("t1")
	assert.Error(t, err)

	running, ok := f.store.State("t1").(Running)
	require.True(t, ok)
	assert.Equal(t, started, running.Log.StartTime)
	assert.Empty(t, f.store.History())
	persisted, err := f.repo.LoadTimeHistory()
	require.NoError(t, err)
	assert.Empty(t, persisted)

	f.tasks.err = nil
	f.clock.Advance(40 * time.Minute)
	log, err := f.store.Pause("t1")
	require.NoError(t, err)
	assert.Equal(t, 45, log.Duration)
	assert.Equal(t, 45, f.tasks.tasks["t1"].TimeSpent)
	assert.Len(t, f.store.History(), 1)
	assert.False(t, f.store.IsRunning("t1"))
}

func TestPauseHistoryFailureKeepsTimerRunning(t *testing.T) {
	f := newFixture(t)
	f.store.Start("t1")
	f.clock.Advance(45 * time.Minute)
	f.repo.FailWrites(fmt.Errorf("disk full"))

	_, err := f.store.Pause("t1")
	assert.Error(t, err)
	assert.True(t, f.store.IsRunning("t1"))
	assert.Equal(t, 0, f.tasks.tasks["t1"].TimeSpent)
	assert.Equal(t, 0, f.tasks.updates)
	assert.Empty(t, f.store.History())
}

// =============================================================================
// Manual Time Tests
// =============================================================================

func TestAddManualTime(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()

	log, err := f.store.AddManualTime("t1", 30)
	require.NoError(t, err)
	require.NotNil(t, log)
	assert.Equal(t, 30, log.Duration)
	assert.Equal(t, now.Add(-30*time.Minute), log.StartTime)
	assert.Equal(t, now, *log.EndTime)
	assert.Equal(t, 30, f.tasks.tasks["t1"].TimeSpent)
}

func TestAddManualTimeIgnoresNonPositive(t *testing.T) {
	f := newFixture(t)

	for _, m := range []int{0, -5} {
		log, err := f.store.AddManualTime("t1", m)
		require.NoError(t, err)
		assert.Nil(t, log)
	}
	assert.Empty(t, f.store.History())
	assert.Equal(t, 0, f.tasks.tasks["t1"].TimeSpent)
}

func TestAddManualTimeWhileRunning(t *testing.T) {
	f := newFixture(t)

	f.store.Start("t1")
	f.clock.Advance(10 * time.Minute)
	_, err := f.store.AddManualTime("t1", 15)
	require.NoError(t, err)

	assert.True(t, f.store.IsRunning("t1"))
	assert.Equal(t, 10, f.store.ElapsedMinutes("t1"))

	_, err = f.store.Pause("t1")
	require.NoError(t, err)
	assert.Equal(t, 25, f.tasks.tasks["t1"].TimeSpent)
	assert.Len(t, f.store.LogsForTask("t1"), 2)
}

// =============================================================================
// History Tests
// =============================================================================

func TestLoadIgnoresActiveAndRestoresHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.AddManualTime("t1", 10)
	require.NoError(t, err)
	f.store.Start("t2")

	reloaded := NewStore(f.repo, f.tasks, f.clock.Now, func() string { return "x" })
	reloaded.Load()

	assert.Len(t, reloaded.History(), 1)
	assert.Empty(t, reloaded.Running())
}

func TestLoadCorruptHistory(t *testing.T) {
	f := newFixture(t)
	f.repo.PutRaw(model.KeyTimeHistory, []byte("garbage"))

	f.store.Load()
	assert.Empty(t, f.store.History())
}

func TestDeleteForTask(t *testing.T) {
	f := newFixture(t)
	_, _ = f.store.AddManualTime("t1", 10)
	_, _ = f.store.AddManualTime("t2", 20)
	f.store.Start("t1")

	require.NoError(t, f.store.DeleteForTask("t1"))

	assert.False(t, f.store.IsRunning("t1"))
	assert.Empty(t, f.store.LogsForTask("t1"))
	assert.Len(t, f.store.LogsForTask("t2"), 1)

	persisted, err := f.repo.LoadTimeHistory()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, "t2", persisted[0].TaskID)
}

func TestHistoryReturnsCopies(t *testing.T) {
	f := newFixture(t)
	_, _ = f.store.AddManualTime("t1", 10)

	f.store.History()[0].Duration = 999
	assert.Equal(t, 10, f.store.History()[0].Duration)

	end := *f.store.History()[0].EndTime
	*f.store.LogsForTask("t1")[0].EndTime = end.Add(time.Hour)
	assert.Equal(t, end, *f.store.History()[0].EndTime)
}

func TestResetAll(t *testing.T) {
	f := newFixture(t)
	_, _ = f.store.AddManualTime("t1", 10)
	f.store.Start("t2")

	f.store.ResetAll()
	assert.Empty(t, f.store.History())
	assert.Empty(t, f.store.Running())
}

func TestSaveFailureKeepsHistory(t *testing.T) {
	f := newFixture(t)
	f.repo.FailWrites(fmt.Errorf("disk full"))

	_, err := f.store.AddManualTime("t2", 10)
	assert.Error(t, err)
	assert.Empty(t, f.store.History())
	assert.Equal(t, 0, f.tasks.tasks["t2"].TimeSpent)
	assert.Equal(t, 0, f.tasks.updates)
}

func TestTaskFailureRollsBackHistory(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.AddManualTime("t1", 10)
	require.NoError(t, err)

	f.tasks.err = fmt.Errorf("write failed")
	_, err = f.store.AddManualTime("t1", 30)
	assert.Error(t, err)

	assert.Len(t, f.store.History(), 1)
	assert.Equal(t, 10, f.tasks.tasks["t1"].TimeSpent)
	persisted, err := f.repo.LoadTimeHistory()
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 10, persisted[0].Duration)
}

// =============================================================================
// Display Tests
// =============================================================================

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{-time.Second, "00:00"},
		{65 * time.Second, "01:05"},
		{45*time.Minute + 7*time.Second, "45:07"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatClock(tt.in))
		})
	}
}

func TestDisplayRender(t *testing.T) {
	d := &Display{UseColor: false, Width: 10}

	out := d.Render(Frame{
		Task:      "Design",
		Project:   "Site",
		Elapsed:   30 * time.Minute,
		Spent:     30,
		Estimated: 120,
		Running:   true,
	})
	assert.Contains(t, out, "RUNNING  Design (Site)")
	assert.Contains(t, out, "30:00")
	assert.Contains(t, out, "[█████░░░░░] 50%")
	assert.Contains(t, out, "60/120 min")
	assert.Contains(t, out, "esc cancel")

	paused := d.Render(Frame{Task: "Build"})
	assert.Contains(t, paused, "PAUSED  Build")
	assert.NotContains(t, paused, "min")
	assert.Contains(t, paused, "space resume")
}

func TestDisplayProgressOverrun(t *testing.T) {
	d := &Display{Width: 4}
	assert.Equal(t, "[████] 150%", d.progressBar(1.5))
	assert.Equal(t, "[░░░░] 0%", d.progressBar(-1))
}
