// internal/app/system/workers/overduegoals.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	goalstore "github.com/dalemusser/pulsehub/internal/app/store/goals"
)

// OverdueGoals is a background worker that flips open goals past their
// target date to overdue status.
type OverdueGoals struct {
	goals    *goalstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewOverdueGoals creates the sweep worker. A typical interval is one
// hour; target dates have day granularity so tighter sweeps buy nothing.
func NewOverdueGoals(goalStore *goalstore.Store, logger *zap.Logger, interval time.Duration) *OverdueGoals {
	return &OverdueGoals{
		goals:    goalStore,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *OverdueGoals) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("overdue goal worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *OverdueGoals) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("overdue goal worker stopped")
}

func (w *OverdueGoals) run() {
	defer w.wg.Done()

	// Sweep once on startup so a long downtime doesn't leave stale
	// goals open until the first tick.
	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *OverdueGoals) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.goals.MarkOverdue(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("failed to mark overdue goals", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("marked goals overdue", zap.Int64("count", count))
	}
}
