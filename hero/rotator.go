package hero

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Rotator periodically advances the current hero to the next history entry.
type Rotator struct {
	manager *Manager
	log     *zap.Logger
	cron    *cron.Cron
}

// NewRotator schedules rotation with a standard five-field cron expression or a
// descriptor such as "@hourly".
func NewRotator(manager *Manager, schedule string, log *zap.Logger) (*Rotator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Rotator{manager: manager, log: log, cron: cron.New()}
	if _, err := r.cron.AddFunc(schedule, func() { r.Rotate(context.Background()) }); err != nil {
		return nil, fmt.Errorf("parse hero rotation schedule %q: %w", schedule, err)
	}
	return r, nil
}

func (r *Rotator) Start() {
	r.log.Info("hero rotator started")
	r.cron.Start()
}

// Stop halts scheduling and waits for a running rotation to finish or ctx to end.
func (r *Rotator) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Rotate sets the entry after the current hero as the new hero, wrapping around.
// When the current hero is not in the history the newest entry is used.
func (r *Rotator) Rotate(ctx context.Context) {
	history := r.manager.History(ctx)
	if len(history) == 0 {
		return
	}

	current := r.manager.Current(ctx)
	next := history[0]
	for i, img := range history {
		if img == current {
			next = history[(i+1)%len(history)]
			break
		}
	}
	if next == current {
		return
	}

	if err := r.manager.SetAsHero(ctx, next); err != nil {
		r.log.Warn("hero rotation failed", zap.Error(err))
		return
	}
	r.log.Debug("hero rotated")
}
