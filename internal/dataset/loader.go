package dataset

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

// Source reads every raw catalogue row from a backing store.
type Source interface {
	Extract(ctx context.Context) ([]domain.RawRecord, error)
}

// Loader builds the in-memory earthquake table once and publishes it to readers.
type Loader struct {
	source      Source
	transformer *Transformer
	logger      *slog.Logger
	metrics     *observability.Metrics
	table       atomic.Pointer[domain.Table]
}

// NewLoader creates a Loader reading from source.
func NewLoader(source Source, transformer *Transformer, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		source:      source,
		transformer: transformer,
		logger:      logger,
		metrics:     metrics,
	}
}

// Table returns the published table, or nil before the first successful load.
func (l *Loader) Table() *domain.Table {
	return l.table.Load()
}

// CheckReadiness returns nil once a table has been published.
func (l *Loader) CheckReadiness(_ context.Context) error {
	if l.table.Load() == nil {
		return errors.New("dataset has not been loaded yet")
	}
	return nil
}

// Run extracts, transforms and publishes the dataset. Extract failures are
// retried with exponential backoff until they succeed or ctx is cancelled.
// Cancellation before a table is published is not an error.
func (l *Loader) Run(ctx context.Context) error {
	start := time.Now()
	backoff := initialBackoff

	for {
		raws, err := l.source.Extract(ctx)
		if err == nil {
			l.publish(ctx, raws, start)
			return nil
		}
		if ctx.Err() != nil {
			l.logger.Info("dataset load stopping", "reason", ctx.Err())
			return nil
		}

		l.metrics.ExtractFailures.Inc()
		l.logger.Error("extract dataset failed", "error", err, "retry_in", backoff)
		if !sleepWithContext(ctx, backoff) {
			l.logger.Info("dataset load stopping", "reason", ctx.Err())
			return nil
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func (l *Loader) publish(ctx context.Context, raws []domain.RawRecord, start time.Time) {
	records := l.transformer.Transform(ctx, raws)
	table := domain.NewTable(records)
	l.table.Store(table)

	l.metrics.DatasetRecords.Set(float64(table.Len()))
	l.metrics.DatasetLoadDuration.Set(time.Since(start).Seconds())
	l.metrics.DatasetReady.Set(1)

	if table.Len() == 0 {
		l.logger.Warn("dataset loaded with no usable rows", "rows_read", len(raws))
		return
	}
	years := table.YearRange()
	l.logger.Info("dataset loaded",
		"rows_read", len(raws),
		"records", table.Len(),
		"countries", len(table.Countries()),
		"years", years.String(),
	)
}

func nextBackoff(current, limit time.Duration) time.Duration {
	next := current * 2
	if next > limit {
		return limit
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
