// Package maintenance runs periodic store upkeep. It only compacts and
// reports; session content is never deleted or modified (retention is an
// external concern).
package maintenance

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Store is the slice of the transcript store the maintenance loop needs.
type Store interface {
	Count(ctx context.Context) (int, error)
	Checkpoint(ctx context.Context) error
}

// Runner schedules store maintenance
type Runner struct {
	cron   *cron.Cron
	store  Store
	logger zerolog.Logger
}

// New creates a maintenance runner with the given cron schedule.
func New(st Store, schedule string, logger zerolog.Logger) (*Runner, error) {
	r := &Runner{
		cron:   cron.New(),
		store:  st,
		logger: logger,
	}

	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, err
	}

	return r, nil
}

// Start starts the schedule.
func (r *Runner) Start() {
	r.cron.Start()
	r.logger.Info().Msg("Store maintenance scheduled")
}

// Stop stops the schedule and waits for a running job to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info().Msg("Store maintenance stopped")
}

func (r *Runner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := r.store.Checkpoint(ctx); err != nil {
		r.logger.Error().Err(err).Msg("Store checkpoint failed")
		return
	}

	count, err := r.store.Count(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Session count failed")
		return
	}

	r.logger.Info().Int("sessions", count).Msg("Store maintenance completed")
}
