package domain

import "time"

// TaskIDDraftAutosave is the ID of the task that saves dirty drafts.
const TaskIDDraftAutosave = "draft-autosave"

// DefaultAutosaveInterval is the time between two autosave runs.
const DefaultAutosaveInterval = 30 * time.Second

// ScheduledTask is the persisted state of a periodic task.
type ScheduledTask struct {
	ID       string
	Name     string
	Interval time.Duration
	Enabled  bool

	// LastRun and NextRun are zero until the task first runs.
	LastRun time.Time
	NextRun time.Time

	// LastError holds the message of the most recent failed run and is
	// cleared by the next successful one.
	LastError   string
	LastSuccess time.Time
}

// IsDue reports whether the task should run at now.
func (t *ScheduledTask) IsDue(now time.Time) bool {
	return t.Enabled && !t.NextRun.After(now)
}

// Schedule records a run that ended at end and moves NextRun one interval on.
func (t *ScheduledTask) Schedule(run TaskRun) {
	t.LastRun = run.StartedAt
	t.NextRun = run.EndedAt.Add(t.Interval)
	if run.Success {
		t.LastError = ""
		t.LastSuccess = run.EndedAt
		return
	}
	t.LastError = run.Error
}

// TaskRun is one logged execution of a task.
type TaskRun struct {
	TaskID    string
	StartedAt time.Time
	EndedAt   time.Time
	Success   bool
	Error     string

	// DraftsSaved counts the drafts written by the run.
	DraftsSaved int
}

// Duration returns how long the run took.
func (r TaskRun) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// SchedulerConfig switches the scheduler and its tasks on or off.
type SchedulerConfig struct {
	Enabled     bool
	TaskConfigs map[string]TaskConfig
}

// TaskConfig is the configuration of one task.
type TaskConfig struct {
	Enabled  bool
	Interval time.Duration
}

// TaskConfigFor returns the configuration of taskID, or the zero value.
func (c *SchedulerConfig) TaskConfigFor(taskID string) TaskConfig {
	return c.TaskConfigs[taskID]
}

// TickInterval is the shortest enabled task interval, or one minute when
// no task has one.
func (c *SchedulerConfig) TickInterval() time.Duration {
	var tick time.Duration
	for _, tc := range c.TaskConfigs {
		if tc.Enabled && tc.Interval > 0 && (tick == 0 || tc.Interval < tick) {
			tick = tc.Interval
		}
	}
	if tick == 0 {
		return time.Minute
	}
	return tick
}

// DefaultSchedulerConfig enables autosave every DefaultAutosaveInterval.
func DefaultSchedulerConfig() SchedulerConfig {
	return DefaultAppSettings().Autosave.SchedulerConfig()
}
