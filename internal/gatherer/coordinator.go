package gatherer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/linwc/twse-chip-data/internal/date"
	"github.com/linwc/twse-chip-data/internal/stocklist"
)

// Coordinator fans day processing out over a window of trailing dates with
// a fixed-size worker pool.
type Coordinator struct {
	day         *Day
	concurrency int
	logger      *slog.Logger
}

// NewCoordinator creates a coordinator running day tasks at the given
// concurrency.
func NewCoordinator(day *Day, concurrency int, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Coordinator{day: day, concurrency: concurrency, logger: logger}
}

// TrailingDates returns the n calendar days ending at (and including) end,
// newest first.
func TrailingDates(end date.Date, n int) []date.Date {
	dates := make([]date.Date, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, end.Add(-i))
	}
	return dates
}

// Run processes every date, bounded by the worker limit. Each date task is
// independent: it runs to completion once started and its problems never
// touch sibling dates. Cancelling ctx stops new tasks from starting but
// lets in-flight ones finish.
func (c *Coordinator) Run(ctx context.Context, dates []date.Date, securities []stocklist.Security) {
	start := time.Now()
	c.logger.Info("run starting",
		"dates", len(dates),
		"securities", len(securities),
		"concurrency", c.concurrency,
	)

	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup
	started := 0

	for _, day := range dates {
		// Acquire a worker slot, unless shutdown was requested.
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			c.logger.Warn("shutdown requested, not starting remaining dates",
				"remaining", len(dates)-started,
			)
			wg.Wait()
			return
		}

		started++
		wg.Add(1)
		go func(day date.Date) {
			defer wg.Done()
			defer func() { <-sem }()

			taskLogger := c.logger.With("task_id", uuid.NewString(), "date", day.String())
			taskLogger.Info("date task starting")
			taskStart := time.Now()
			// A started task must run to completion even during shutdown:
			// aborting mid-day would persist a partial capture that the
			// write-once snapshot guard then freezes forever.
			c.day.Process(context.WithoutCancel(ctx), day, securities)
			taskLogger.Info("date task finished", "duration", time.Since(taskStart))
		}(day)
	}

	wg.Wait()
	c.logger.Info("run complete", "dates", started, "duration", time.Since(start))
}
