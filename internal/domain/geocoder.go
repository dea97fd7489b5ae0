package domain

import "context"

// GeocodingResult contains the country a geocoding provider resolved.
type GeocodingResult struct {
	Country     string
	CountryCode string
	Confidence  float64 // 0.0–1.0 provider confidence score
}

// Geocoder resolves coordinates to the country they fall in.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (GeocodingResult, error)
}
