package driven

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// SchedulerStore keeps the autosave task state and a log of its runs, so
// the next process picks up the schedule where the last one stopped.
type SchedulerStore interface {
	// Task returns the task with the given ID, or nil when it was never stored.
	Task(ctx context.Context, taskID string) (*domain.ScheduledTask, error)

	// Tasks returns every stored task.
	Tasks(ctx context.Context) ([]domain.ScheduledTask, error)

	// PutTask inserts or replaces a task.
	PutTask(ctx context.Context, task *domain.ScheduledTask) error

	// RemoveTask deletes a task together with its runs.
	RemoveTask(ctx context.Context, taskID string) error

	// AppendRun logs one run of a task.
	AppendRun(ctx context.Context, run *domain.TaskRun) error

	// Runs returns up to limit runs of a task, newest first.
	Runs(ctx context.Context, taskID string, limit int) ([]domain.TaskRun, error)

	// TrimRuns keeps the newest keep runs of each task and drops the rest.
	TrimRuns(ctx context.Context, keep int) error
}
