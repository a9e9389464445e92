package driving

import (
	"context"

	"github.com/OpertusMundi/frontend-admin-sub000/internal/core/domain"
)

// Scheduler manages background tasks like draft autosave.
type Scheduler interface {
	// Start begins running scheduled tasks.
	// Blocks until context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops all running tasks.
	Stop() error

	// Reload applies a new configuration without a restart.
	Reload(ctx context.Context, config domain.SchedulerConfig) error
}
