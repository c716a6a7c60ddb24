package tasks

import (
	"context"
)

// Filter narrows and orders a task listing. Priority and Status filter by
// exact match when set. SortBy names a task attribute to sort by in
// ascending order; unknown names are ignored (see sortColumns).
type Filter struct {
	Priority *int
	Status   string
	SortBy   string
}

// sortColumns whitelists the client-suppliable sort fields and maps them to
// store column names. Anything else is dropped rather than interpolated.
var sortColumns = map[string]string{
	"title":     "title",
	"startTime": "start_time",
	"endTime":   "end_time",
	"priority":  "priority",
	"status":    "status",
}

type Repository interface {
	// Create inserts a task and fills in its generated ID.
	Create(ctx context.Context, task *Task) (*Task, error)

	// Update fully replaces the task with the given ID and returns the new
	// state, or shared.ErrorNotFound when no such task exists.
	Update(ctx context.Context, id string, task *Task) (*Task, error)

	// Delete removes a task by ID. Deleting an absent ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns tasks matching the filter. A zero Filter returns all.
	List(ctx context.Context, filter Filter) ([]*Task, error)
}
