package jobs

import (
	"context"
	"errors"
	"log/slog"

	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// PickupReleaseJob runs the deferred Draft promotion once a minute. Orders
// become visible to pickup staff only after their persisted pickup-ready
// time has passed.
type PickupReleaseJob struct {
	handler commands.ReleasePickupReadyCommandHandler
	actorID kernel.UUID
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewPickupReleaseJob creates the promotion job. The actor id is the system
// user recorded on promotion history rows.
func NewPickupReleaseJob(
	handler commands.ReleasePickupReadyCommandHandler,
	actorID kernel.UUID,
	logger *slog.Logger,
) *PickupReleaseJob {
	return &PickupReleaseJob{
		handler: handler,
		actorID: actorID,
		cron:    cron.New(),
		logger:  logger.With("component", "pickup_release_job"),
	}
}

// Start schedules the promotion sweep to run every minute.
func (j *PickupReleaseJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewReleasePickupReadyCommand(j.actorID)
		if err != nil {
			j.logger.ErrorContext(ctx, "pickup release command rejected", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			if !errors.Is(err, commands.ErrNoOrdersDueForRelease) {
				j.logger.ErrorContext(ctx, "pickup release sweep failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "pickup release job started")
	return nil
}

// Stop stops the promotion job.
func (j *PickupReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "pickup release job stopped")
}
