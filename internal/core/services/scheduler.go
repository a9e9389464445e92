package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driven"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/ports/driving"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

var _ driving.Scheduler = (*Scheduler)(nil)

// runsRetained is the number of runs kept per task.
const runsRetained = 100

// Scheduler runs the draft autosave task on a ticker. Task state survives
// restarts through the SchedulerStore, so a task that was due while the
// process was down runs on the first tick.
type Scheduler struct {
	config    domain.SchedulerConfig
	store     driven.SchedulerStore
	autosaver driving.Autosaver

	mu       sync.Mutex
	running  bool
	stopCh   chan struct{}
	resetCh  chan struct{}
	wg       sync.WaitGroup
	inFlight map[string]bool
}

// NewScheduler creates a scheduler. A nil autosaver makes autosave runs no-ops.
func NewScheduler(config domain.SchedulerConfig, store driven.SchedulerStore, autosaver driving.Autosaver) *Scheduler {
	return &Scheduler{
		config:    config,
		store:     store,
		autosaver: autosaver,
		resetCh:   make(chan struct{}, 1),
		inFlight:  make(map[string]bool),
	}
}

// Start registers the configured tasks and blocks running them until Stop
// is called or ctx is done. A disabled scheduler returns at once.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running || !s.config.Enabled {
		enabled := s.config.Enabled
		s.mu.Unlock()
		if !enabled {
			logger.Info("autosave is disabled")
		}
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stop := s.stopCh
	s.mu.Unlock()

	if err := s.registerTasks(ctx); err != nil {
		logger.Error("scheduler: registering tasks: %v", err)
	}

	s.runDue(ctx)
	ticker := time.NewTicker(s.tickInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.stopCh == stop {
				s.running = false
			}
			s.mu.Unlock()
			return ctx.Err()
		case <-stop:
			return nil
		case <-s.resetCh:
			ticker.Reset(s.tickInterval())
		case <-ticker.C:
			s.runDue(ctx)
		}
	}
}

// Reload replaces the configuration. A running scheduler re-registers its
// tasks and resets its ticker; otherwise the next Start uses config.
// Disabling autosave while running pauses the task without stopping the loop.
func (s *Scheduler) Reload(ctx context.Context, config domain.SchedulerConfig) error {
	s.mu.Lock()
	s.config = config
	running := s.running
	s.mu.Unlock()

	if !running {
		return nil
	}
	if err := s.registerTasks(ctx); err != nil {
		return fmt.Errorf("reloading scheduler: %w", err)
	}
	select {
	case s.resetCh <- struct{}{}:
	default:
	}
	return nil
}

func (s *Scheduler) tickInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config.TickInterval()
}

// Stop ends the loop and waits for runs in progress.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

func (s *Scheduler) registerTasks(ctx context.Context) error {
	s.mu.Lock()
	cfg := s.config.TaskConfigFor(domain.TaskIDDraftAutosave)
	s.mu.Unlock()
	if cfg.Interval <= 0 {
		return nil
	}
	return s.upsertTask(ctx, domain.TaskIDDraftAutosave, "Draft Autosave", cfg)
}

// upsertTask stores the task, keeping its schedule unless the interval changed.
func (s *Scheduler) upsertTask(ctx context.Context, id, name string, cfg domain.TaskConfig) error {
	task, err := s.store.Task(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		task = &domain.ScheduledTask{ID: id, Name: name}
	}
	if task.Interval != cfg.Interval || task.NextRun.IsZero() {
		task.Interval = cfg.Interval
		task.NextRun = time.Now().Add(cfg.Interval)
	}
	task.Enabled = cfg.Enabled
	return s.store.PutTask(ctx, task)
}

func (s *Scheduler) runDue(ctx context.Context) {
	tasks, err := s.store.Tasks(ctx)
	if err != nil {
		logger.Error("scheduler: listing tasks: %v", err)
		return
	}
	now := time.Now()
	for i := range tasks {
		if tasks[i].IsDue(now) {
			s.launch(ctx, &tasks[i])
		}
	}
}

// launch runs task in the background unless its previous run is still going.
func (s *Scheduler) launch(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	if s.inFlight[task.ID] {
		s.mu.Unlock()
		logger.Debug("scheduler: %s still running, skipping", task.ID)
		return
	}
	s.inFlight[task.ID] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			delete(s.inFlight, task.ID)
			s.mu.Unlock()
		}()

		run := domain.TaskRun{TaskID: task.ID, StartedAt: time.Now()}
		var err error
		switch task.ID {
		case domain.TaskIDDraftAutosave:
			run.DraftsSaved, err = s.saveDirtyDrafts(ctx)
		default:
			logger.Warn("scheduler: unknown task %s", task.ID)
			return
		}
		run.EndedAt = time.Now()
		run.Success = err == nil
		if err != nil {
			run.Error = err.Error()
			logger.Warn("scheduler: %s failed: %v", task.ID, err)
		} else if run.DraftsSaved > 0 {
			logger.Debug("scheduler: %s saved %d draft(s)", task.ID, run.DraftsSaved)
		}
		task.Schedule(run)
		s.record(context.WithoutCancel(ctx), task, run)
	}()
}

// record stores the task state and the run log. It runs detached from the
// caller's cancellation so a shutdown still logs the last run.
func (s *Scheduler) record(ctx context.Context, task *domain.ScheduledTask, run domain.TaskRun) {
	if err := s.store.PutTask(ctx, task); err != nil {
		logger.Error("scheduler: saving task %s: %v", task.ID, err)
	}
	if err := s.store.AppendRun(ctx, &run); err != nil {
		logger.Error("scheduler: logging run of %s: %v", task.ID, err)
	}
	if err := s.store.TrimRuns(ctx, runsRetained); err != nil {
		logger.Error("scheduler: trimming runs: %v", err)
	}
}

func (s *Scheduler) saveDirtyDrafts(ctx context.Context) (int, error) {
	if s.autosaver == nil {
		return 0, nil
	}
	return s.autosaver.SaveDirty(ctx)
}
