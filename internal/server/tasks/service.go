// Package tasks owns the task lifecycle and the dashboard aggregation.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskpilot/internal/shared"
)

type Service struct {
	repo Repository

	// overridable in tests
	now func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, task *Task) (*Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}

	return created, nil
}

// Update fully replaces the task with the given ID. An unknown ID yields a
// nil task with a nil error rather than a failure; no record is created.
func (s *Service) Update(ctx context.Context, id string, task *Task) (*Task, error) {
	if err := task.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, task)
	if err != nil {
		if errors.Is(err, shared.ErrorNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error updating task: %w", err)
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Task, error) {
	list, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return list, nil
}

// PendingTaskSummary describes one still-pending task on the dashboard.
// TimeLapsed is hours since the task's start; TimeToFinish is hours until
// its end, floored at zero.
type PendingTaskSummary struct {
	Priority     int     `json:"priority"`
	Title        string  `json:"title"`
	TimeLapsed   float64 `json:"timeLapsed"`
	TimeToFinish float64 `json:"timeToFinish"`
}

// Dashboard is the derived summary recomputed from the full task set on
// every call.
type Dashboard struct {
	TotalCount          int                  `json:"totalCount"`
	CompletedPercentage float64              `json:"completedPercentage"`
	PendingCount        int                  `json:"pendingCount"`
	AverageActualTime   float64              `json:"averageActualTime"`
	PendingTaskSummary  []PendingTaskSummary `json:"pendingTaskSummary"`
}

// Dashboard reads the whole task set and aggregates it. No caching and no
// pagination: the computation is repeated per request.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	list, err := s.repo.List(ctx, Filter{})
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	return buildDashboard(list, s.now()), nil
}

func buildDashboard(list []*Task, now time.Time) *Dashboard {
	d := &Dashboard{PendingTaskSummary: []PendingTaskSummary{}}

	d.TotalCount = len(list)

	var completed int
	var totalActualHours float64

	for _, task := range list {
		switch task.Status {
		case StatusFinished:
			completed++
			totalActualHours += task.EndTime.Sub(task.StartTime).Hours()
		case StatusPending:
			timeToFinish := task.EndTime.Sub(now).Hours()
			if timeToFinish < 0 {
				timeToFinish = 0
			}
			d.PendingTaskSummary = append(d.PendingTaskSummary, PendingTaskSummary{
				Priority:     task.Priority,
				Title:        task.Title,
				TimeLapsed:   now.Sub(task.StartTime).Hours(),
				TimeToFinish: timeToFinish,
			})
		}
	}

	d.PendingCount = d.TotalCount - completed

	// an empty task set yields 0, not NaN
	if d.TotalCount > 0 {
		d.CompletedPercentage = float64(completed) / float64(d.TotalCount) * 100
	}
	if completed > 0 {
		d.AverageActualTime = totalActualHours / float64(completed)
	}

	return d
}
