// Package timer tracks running work timers per task and records completed
// intervals in the time history.
package timer

import (
	"time"

	"github.com/manav03panchal/workflowr/internal/model"
)

// State is the timer state of one task: Idle or Running.
type State interface {
	isState()
	// Running reports whether an active log exists.
	Running() bool
}

// Idle means no active log exists for the task.
type Idle struct{}

// Running carries the task's active log.
type Running struct {
	Log *model.TimeLog
}

func (Idle) isState()    {}
func (Running) isState() {}

func (Idle) Running() bool    { return false }
func (Running) Running() bool { return true }

// Since returns how long the timer has been running at now.
func (r Running) Since(now time.Time) time.Duration {
	return now.Sub(r.Log.StartTime)
}
