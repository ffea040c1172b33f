package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Worker periodically recomputes the urgency dashboard so the cached copy
// stays warm between requests.
type Worker struct {
	service  *Service
	logger   *zap.Logger
	interval time.Duration
	limit    int
	done     chan struct{}
}

// NewWorker creates a new dashboard refresh worker
func NewWorker(service *Service, logger *zap.Logger, interval time.Duration, limit int) *Worker {
	return &Worker{
		service:  service,
		logger:   logger,
		interval: interval,
		limit:    limit,
		done:     make(chan struct{}),
	}
}

// Start begins the refresh loop. Runs one pass immediately, then on every
// tick until the context is cancelled or Stop is called.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting dashboard refresh worker",
		zap.Duration("interval", w.interval),
		zap.Int("limit", w.limit),
	)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refresh(ctx)

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			w.logger.Info("Dashboard refresh worker stopped")
			return
		case <-w.done:
			w.logger.Info("Dashboard refresh worker shutdown requested")
			return
		}
	}
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	close(w.done)
}

func (w *Worker) refresh(ctx context.Context) {
	start := time.Now()
	if err := w.service.RefreshDashboard(ctx, w.limit); err != nil {
		w.logger.Error("Failed to refresh dashboard", zap.Error(err))
		return
	}
	w.logger.Debug("Dashboard refreshed", zap.Duration("took", time.Since(start)))
}
