package model

import "time"

// TimeEntry is one start/stop span of work on a task. EndedAt is nil while
// the timer is running. DurationSeconds is a display convenience set on
// stop; summaries recompute from the timestamps so sub-second precision is
// only dropped once, at the summary boundary.
type TimeEntry struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID          string     `gorm:"size:36;not null;index" json:"task_id"`
	OwnerID         string     `gorm:"size:64;not null;index" json:"owner_id"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	DurationSeconds int64      `gorm:"not null;default:0" json:"duration_seconds"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (e *TimeEntry) Running() bool {
	return e.EndedAt == nil
}
