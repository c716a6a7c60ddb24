package tasks

import (
	"fmt"
	"time"

	"taskpilot/internal/shared"
)

const (
	StatusPending  = "pending"
	StatusFinished = "finished"
)

// Task is a time-boxed unit of work. EndTime before StartTime is accepted
// as-is; rejecting it is an open product decision.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Priority  int       `json:"priority"`
	Status    string    `json:"status"`
}

// Validate checks the field constraints the task store enforces:
// non-empty title, priority in [1,5], status one of pending/finished.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", shared.ErrorValidation)
	}
	if t.Priority < 1 || t.Priority > 5 {
		return fmt.Errorf("%w: priority must be between 1 and 5", shared.ErrorValidation)
	}
	if t.Status != StatusPending && t.Status != StatusFinished {
		return fmt.Errorf("%w: status must be %q or %q", shared.ErrorValidation, StatusPending, StatusFinished)
	}
	return nil
}
