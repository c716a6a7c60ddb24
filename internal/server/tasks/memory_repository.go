package tasks

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"taskpilot/internal/shared"
)

// MemoryRepository is an in-memory Repository used by tests and the
// in-memory repository manager.
type MemoryRepository struct {
	mu    sync.RWMutex
	byID  map[string]*Task
	order []string // insertion order, so unsorted listings are stable
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]*Task)}
}

func (r *MemoryRepository) Create(ctx context.Context, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = uuid.NewString()

	stored := *task
	r.byID[task.ID] = &stored
	r.order = append(r.order, task.ID)

	return task, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, task *Task) (*Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nil, shared.ErrorNotFound
	}

	stored := *task
	stored.ID = id
	r.byID[id] = &stored

	out := stored
	return &out, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return nil
	}

	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepository) List(ctx context.Context, filter Filter) ([]*Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*Task{}
	for _, id := range r.order {
		task := r.byID[id]
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.Status != "" && task.Status != filter.Status {
			continue
		}
		out := *task
		result = append(result, &out)
	}

	if _, ok := sortColumns[filter.SortBy]; ok {
		sortTasks(result, filter.SortBy)
	}

	return result, nil
}

func sortTasks(list []*Task, field string) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i], list[j]
		switch field {
		case "title":
			return a.Title < b.Title
		case "startTime":
			return a.StartTime.Before(b.StartTime)
		case "endTime":
			return a.EndTime.Before(b.EndTime)
		case "priority":
			return a.Priority < b.Priority
		case "status":
			return a.Status < b.Status
		default:
			return false
		}
	})
}
