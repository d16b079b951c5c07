package model

import (
	"math"
	"time"
)

// TimeLog is a recorded interval, or a synthesized manual entry, of work on a task.
type TimeLog struct {
	ID        string     `json:"id"`
	TaskID    string     `json:"taskId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Duration  int        `json:"duration"` // minutes
}

// GetID returns the log identifier.
func (l *TimeLog) GetID() string {
	return l.ID
}

// Clone returns a copy of the log that shares no pointers with it.
func (l *TimeLog) Clone() *TimeLog {
	c := *l
	if l.EndTime != nil {
		end := *l.EndTime
		c.EndTime = &end
	}
	return &c
}

// IsActive returns true if the log has no end time (timer running).
func (l *TimeLog) IsActive() bool {
	return l.EndTime == nil
}

// NewActiveLog creates an unterminated log starting at start.
func NewActiveLog(id, taskID string, start time.Time) *TimeLog {
	return &TimeLog{
		ID:        id,
		TaskID:    taskID,
		StartTime: start,
	}
}

// Complete returns a terminated copy of the log ending at end.
func (l *TimeLog) Complete(end time.Time) *TimeLog {
	c := l.Clone()
	c.EndTime = &end
	c.Duration = ElapsedMinutes(l.StartTime, end)
	return c
}

// ElapsedMinutes returns the whole minutes between start and end, rounded
// half away from zero so that 29s counts as 0 and 30s as 1.
func ElapsedMinutes(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Minutes()))
}
