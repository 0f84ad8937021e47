package jobs

import (
	"context"
	"time"

	"openpilotlog/nightlog/internal/logging"
)

// InitializeJobs creates the background jobs and starts the scheduled ones.
// An interval of 0 leaves the night time job to manual triggers.
func InitializeJobs(ctx context.Context, svc NightTimeRecomputer, interval time.Duration) *NightTimeJob {
	nightTimeJob := NewNightTimeJob(svc)

	if interval > 0 {
		go nightTimeJob.RunScheduled(ctx, interval)
		logging.Info("Scheduled night time recompute", "interval", interval.String())
	}

	return nightTimeJob
}
