package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.Len(t, config.TaskConfigs, 1)

	cfg := config.TaskConfigs[TaskIDDraftAutosave]
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 30000*time.Millisecond, cfg.Interval)
}

func TestSchedulerConfig_TaskConfigFor(t *testing.T) {
	config := DefaultSchedulerConfig()

	cfg := config.TaskConfigFor(TaskIDDraftAutosave)
	assert.True(t, cfg.Enabled)

	unknownCfg := config.TaskConfigFor("unknown-task")
	assert.False(t, unknownCfg.Enabled)
	assert.Equal(t, time.Duration(0), unknownCfg.Interval)
}

func TestSchedulerConfig_TaskConfigFor_NilMap(t *testing.T) {
	config := SchedulerConfig{Enabled: true}

	cfg := config.TaskConfigFor("any-task")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Interval)
}

func TestSchedulerConfig_TickInterval(t *testing.T) {
	tests := []struct {
		name    string
		configs map[string]TaskConfig
		want    time.Duration
	}{
		{"no tasks", nil, time.Minute},
		{"all disabled", map[string]TaskConfig{"a": {Enabled: false, Interval: time.Second}}, time.Minute},
		{"zero interval ignored", map[string]TaskConfig{"a": {Enabled: true}}, time.Minute},
		{"single", map[string]TaskConfig{"a": {Enabled: true, Interval: 30 * time.Second}}, 30 * time.Second},
		{"smallest enabled", map[string]TaskConfig{
			"a": {Enabled: true, Interval: time.Hour},
			"b": {Enabled: true, Interval: 10 * time.Second},
			"c": {Enabled: false, Interval: time.Second},
		}, 10 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SchedulerConfig{Enabled: true, TaskConfigs: tt.configs}
			assert.Equal(t, tt.want, c.TickInterval())
		})
	}
}

func TestScheduledTask_IsDue(t *testing.T) {
	now := time.Now()

	task := ScheduledTask{ID: TaskIDDraftAutosave, Enabled: true, NextRun: now.Add(-time.Second)}
	assert.True(t, task.IsDue(now))

	task.NextRun = now
	assert.True(t, task.IsDue(now))

	task.NextRun = now.Add(time.Second)
	assert.False(t, task.IsDue(now))

	task.NextRun = now.Add(-time.Second)
	task.Enabled = false
	assert.False(t, task.IsDue(now))
}

func TestScheduledTask_Schedule(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Second)
	task := ScheduledTask{ID: TaskIDDraftAutosave, Interval: 30 * time.Second, Enabled: true}

	failed := TaskRun{TaskID: task.ID, StartedAt: start, EndedAt: end, Error: "offline"}
	task.Schedule(failed)
	assert.Equal(t, start, task.LastRun)
	assert.Equal(t, end.Add(30*time.Second), task.NextRun)
	assert.Equal(t, "offline", task.LastError)
	assert.True(t, task.LastSuccess.IsZero())
	assert.Equal(t, 2*time.Second, failed.Duration())

	ok := TaskRun{TaskID: task.ID, StartedAt: end, EndedAt: end.Add(time.Second), Success: true, DraftsSaved: 1}
	task.Schedule(ok)
	assert.Empty(t, task.LastError)
	assert.Equal(t, ok.EndedAt, task.LastSuccess)
}

func TestTaskConstants(t *testing.T) {
	assert.Equal(t, "draft-autosave", TaskIDDraftAutosave)
	assert.Equal(t, 30*time.Second, DefaultAutosaveInterval)
}
