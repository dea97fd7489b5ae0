package domain

import (
	"context"
	"log/slog"
)

// BackfillCountry fills in a missing country by reverse geocoding the
// epicentre. Records that already have a country, a nil geocoder, and
// geocoding failures all leave the record unchanged. The second return value
// reports whether the country was filled.
func BackfillCountry(ctx context.Context, e Earthquake, geocoder Geocoder, logger *slog.Logger) (Earthquake, bool) {
	if geocoder == nil || e.Country != "" {
		return e, false
	}

	result, err := geocoder.ReverseGeocode(ctx, e.Latitude, e.Longitude)
	if err != nil {
		logger.Warn("reverse geocoding failed",
			"lat", e.Latitude,
			"lon", e.Longitude,
			"date_time", e.DateTime,
			"error", err,
		)
		return e, false
	}
	if result.Country == "" {
		return e, false
	}

	e.Country = result.Country
	return e, true
}
