package jobs

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleClaimReleaseJob periodically reopens deliveries whose claim went
// stale, putting them back on the board for other agencies.
type StaleClaimReleaseJob struct {
	handler     commands.ReleaseStaleClaimsCommandHandler
	maxClaimAge time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewStaleClaimReleaseJob creates a job that sweeps stale claims. Claims
// older than maxClaimAge are released on each run.
func NewStaleClaimReleaseJob(
	handler commands.ReleaseStaleClaimsCommandHandler,
	maxClaimAge time.Duration,
	logger *slog.Logger,
) *StaleClaimReleaseJob {
	return &StaleClaimReleaseJob{
		handler:     handler,
		maxClaimAge: maxClaimAge,
		cron:        cron.New(cron.WithSeconds()),
		logger:      logger.With("component", "stale_claim_release_job"),
	}
}

// Start begins the stale claim sweep, running at the top of every minute.
func (j *StaleClaimReleaseJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewReleaseStaleClaimsCommand(j.maxClaimAge)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Stale claim release job misconfigured", "error", cmdErr)
			return
		}

		released, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Stale claim release job failed", "error", handleErr)
			return
		}

		if released > 0 {
			j.logger.InfoContext(ctx, "Released stale delivery claims", "count", released)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claim release job started (running every minute)")
	return nil
}

// Stop stops the stale claim sweep.
func (j *StaleClaimReleaseJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale claim release job stopped")
}
