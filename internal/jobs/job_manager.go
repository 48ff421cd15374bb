package jobs

import (
	"fmt"
	"log/slog"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	pickupReleaseJob *PickupReleaseJob
	autoAssignJob    *AutoAssignJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	releaseHandler commands.ReleasePickupReadyCommandHandler,
	autoAssignHandler commands.AutoAssignCouriersCommandHandler,
	systemActorID kernel.UUID,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		pickupReleaseJob: NewPickupReleaseJob(releaseHandler, systemActorID, logger),
		autoAssignJob:    NewAutoAssignJob(autoAssignHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.pickupReleaseJob.Start(); err != nil {
		return fmt.Errorf("failed to start pickup release job: %w", err)
	}

	if err := jm.autoAssignJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.pickupReleaseJob.Stop()
		return fmt.Errorf("failed to start auto assign job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pickupReleaseJob.Stop()
	jm.autoAssignJob.Stop()
}
