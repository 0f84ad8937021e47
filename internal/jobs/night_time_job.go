package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"openpilotlog/nightlog/internal/constants"
	"openpilotlog/nightlog/internal/logging"
	"openpilotlog/nightlog/internal/services"

	"github.com/google/uuid"
)

var ErrJobRunning = errors.New("job already running")

// NightTimeRecomputer is the part of services.FlightTimesService the job drives
type NightTimeRecomputer interface {
	RecomputeNightTimes(ctx context.Context) (*services.RecomputeResult, error)
}

// NightTimeJob recomputes night time for the whole logbook. Runs never overlap:
// a trigger while a pass is in progress returns ErrJobRunning.
type NightTimeJob struct {
	svc NightTimeRecomputer

	running sync.Mutex

	mu         sync.RWMutex
	lastResult *services.RecomputeResult
	lastRunAt  time.Time
}

// NewNightTimeJob creates a new night time recompute job
func NewNightTimeJob(svc NightTimeRecomputer) *NightTimeJob {
	return &NightTimeJob{svc: svc}
}

// Run executes one recompute pass
func (j *NightTimeJob) Run(ctx context.Context) (*services.RecomputeResult, error) {
	if !j.running.TryLock() {
		return nil, ErrJobRunning
	}
	defer j.running.Unlock()

	log := logging.WithJob(string(constants.JobRecomputeNightTimes), uuid.NewString())
	start := time.Now()
	log.Infow("Starting night time recompute", "started_at", start.Format(time.RFC3339))

	result, err := j.svc.RecomputeNightTimes(ctx)
	if err != nil {
		log.Errorw("Night time recompute failed", "error", err)
		return result, err
	}

	j.mu.Lock()
	j.lastResult = result
	j.lastRunAt = start
	j.mu.Unlock()

	log.Infow("Completed night time recompute",
		"duration", time.Since(start).Truncate(time.Millisecond).String(),
		"updated", result.Updated,
		"failed", result.Failed,
	)
	return result, nil
}

// LastResult returns the outcome of the last successful pass, or nil
func (j *NightTimeJob) LastResult() (*services.RecomputeResult, time.Time) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastResult, j.lastRunAt
}

// RunScheduled runs the job every interval until ctx is cancelled
func (j *NightTimeJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := j.Run(ctx); err != nil && !errors.Is(err, ErrJobRunning) {
				logging.Error("Error in scheduled night time recompute", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Shutting down scheduled night time recompute")
			return
		}
	}
}
