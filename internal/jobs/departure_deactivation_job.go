package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DepartureDeactivationJob periodically deactivates departures whose date has
// passed, so they stop appearing as assignment targets. Products already
// assigned to a deactivated departure are left untouched.
type DepartureDeactivationJob struct {
	handler commands.DeactivatePastDeparturesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDepartureDeactivationJob creates a new job for retiring past departures.
func NewDepartureDeactivationJob(
	handler commands.DeactivatePastDeparturesCommandHandler, logger *slog.Logger,
) *DepartureDeactivationJob {
	return &DepartureDeactivationJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "departure_deactivation_job"),
	}
}

// Start schedules the job to run at the top of every hour.
func (j *DepartureDeactivationJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDeactivatePastDeparturesCommand(time.Now())
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Departure deactivation command invalid", "error", cmdErr)
			return
		}

		count, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Departure deactivation job failed", "error", handleErr)
			return
		}

		if count > 0 {
			j.logger.InfoContext(ctx, "Deactivated past departures", "count", count)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Departure deactivation job started (running hourly)")
	return nil
}

// Stop stops the departure deactivation job.
func (j *DepartureDeactivationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Departure deactivation job stopped")
}
