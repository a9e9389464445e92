package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
)

// Ensure SchedulerStore implements the interface.
var _ driven.SchedulerStore = (*SchedulerStore)(nil)

// SchedulerStore is an in-memory implementation of driven.SchedulerStore.
type SchedulerStore struct {
	mu      sync.RWMutex
	tasks   map[string]domain.ScheduledTask
	runs map[string][]domain.TaskRun
}

// NewSchedulerStore creates a new in-memory scheduler store.
func NewSchedulerStore() *SchedulerStore {
	return &SchedulerStore{
		tasks:   make(map[string]domain.ScheduledTask),
		runs: make(map[string][]domain.TaskRun),
	}
}

// Task retrieves a scheduled task by ID. Returns nil if not found.
func (s *SchedulerStore) Task(_ context.Context, taskID string) (*domain.ScheduledTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, nil
	}
	return &task, nil
}

// Tasks returns all scheduled tasks ordered by ID.
func (s *SchedulerStore) Tasks(_ context.Context) ([]domain.ScheduledTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := make([]domain.ScheduledTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

// PutTask creates or updates a task.
func (s *SchedulerStore) PutTask(_ context.Context, task *domain.ScheduledTask) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

// RemoveTask removes a task and its runs.
func (s *SchedulerStore) RemoveTask(_ context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tasks, taskID)
	delete(s.runs, taskID)
	return nil
}

// AppendRun logs one run of a task.
func (s *SchedulerStore) AppendRun(_ context.Context, run *domain.TaskRun) error {
	if run == nil {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.TaskID] = append(s.runs[run.TaskID], *run)
	return nil
}

// Runs returns up to limit runs of a task, newest first.
func (s *SchedulerStore) Runs(_ context.Context, taskID string, limit int) ([]domain.TaskRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := newestFirst(s.runs[taskID])
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// TrimRuns keeps the newest keep runs of each task.
func (s *SchedulerStore) TrimRuns(_ context.Context, keep int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, runs := range s.runs {
		if len(runs) <= keep {
			continue
		}
		s.runs[id] = newestFirst(runs)[:keep]
	}
	return nil
}

func newestFirst(runs []domain.TaskRun) []domain.TaskRun {
	out := make([]domain.TaskRun, len(runs))
	copy(out, runs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}
