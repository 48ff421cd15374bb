package jobs

import (
	"context"
	"errors"
	"log/slog"

	"cargo/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// AutoAssignJob retries pickup assignment once a minute for orders that
// left intake without a courier. Intake already tries once; this job covers
// the window where no courier was eligible at creation time.
type AutoAssignJob struct {
	handler commands.AutoAssignCouriersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAutoAssignJob creates the assignment retry job.
func NewAutoAssignJob(handler commands.AutoAssignCouriersCommandHandler, logger *slog.Logger) *AutoAssignJob {
	return &AutoAssignJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "auto_assign_job"),
	}
}

// Start schedules the assignment sweep to run every minute.
func (j *AutoAssignJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewAutoAssignCouriersCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			if !errors.Is(err, commands.ErrNoOrdersAwaitingAssignment) {
				j.logger.ErrorContext(ctx, "auto assignment sweep failed", "error", err)
			}
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "auto assign job started")
	return nil
}

// Stop stops the assignment retry job.
func (j *AutoAssignJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "auto assign job stopped")
}
