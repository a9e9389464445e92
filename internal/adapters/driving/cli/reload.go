package cli

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
	"github.com/OpertusMundi/frontend-admin-sub000/internal/logger"
)

// watchSettings streams the settings each time the config file changes,
// until ctx is done. It returns nil when nothing can be watched.
func watchSettings(ctx context.Context) <-chan *domain.AppSettings {
	if settingsService == nil {
		return nil
	}
	updates, err := settingsService.Watch(ctx)
	if err != nil {
		logger.Debug("settings will not be reloaded: %v", err)
		return nil
	}
	return updates
}

// applySettings hands reloaded settings to the long-running services.
// Open editors keep the outline policy they were opened with.
func applySettings(ctx context.Context, s *domain.AppSettings) {
	if draftService != nil {
		draftService.SetPolicy(s.Outline.Policy())
	}
	if schedulerService != nil {
		if err := schedulerService.Reload(ctx, s.Autosave.SchedulerConfig()); err != nil {
			logger.Warn("applying autosave settings: %v", err)
		}
	}
	logger.Info("settings reloaded (autosave every %s, depth unit %d)",
		s.Autosave.EditorInterval(), s.Outline.Policy().DepthUnit)
}
