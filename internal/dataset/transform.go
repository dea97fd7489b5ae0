package dataset

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// Transformer turns raw rows into earthquakes, dropping rows that do not
// parse and optionally backfilling missing countries.
type Transformer struct {
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a Transformer. Pass a nil geocoder to leave missing
// countries empty.
func NewTransformer(geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *Transformer {
	return &Transformer{geocoder: geocoder, logger: logger, metrics: metrics}
}

// Transform parses raws in order. The result preserves source order.
func (t *Transformer) Transform(ctx context.Context, raws []domain.RawRecord) []domain.Earthquake {
	out := make([]domain.Earthquake, 0, len(raws))
	for i, raw := range raws {
		e, err := domain.ParseRecord(raw)
		if err != nil {
			t.logger.Warn("parse failed, skipping row", "row", i, "error", err)
			t.metrics.RowsSkipped.Inc()
			continue
		}

		e, filled := domain.BackfillCountry(ctx, e, t.geocoder, t.logger)
		if filled {
			t.metrics.CountriesBackfilled.Inc()
			t.logger.Debug("country backfilled", "row", i, "country", e.Country)
		}
		out = append(out, e)
	}
	return out
}
