package model

import "time"

// AggregatedTask is a report row: every entry of a day sharing one exact note.
type AggregatedTask struct {
	IDs                  []int64
	Start                time.Time
	End                  time.Time
	TotalDurationSeconds int64
	Note                 string
	Tags                 []Tag
	// Running is set when any member interval has not ended yet.
	Running bool
}

// Allocation is the hours booked on every weekday for one project and
// optional task.
type Allocation struct {
	Hours     float64 `yaml:"hours"`
	ProjectID int64   `yaml:"project"`
	TaskID    *int64  `yaml:"task,omitempty"`
}
