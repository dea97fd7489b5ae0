package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang/geo/s2"
)

// GeoPoint is one bubble on the map.
type GeoPoint struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lon"`
	Magnitude float64   `json:"magnitude"`
	Country   string    `json:"country"`
	DateTime  time.Time `json:"date_time"`
}

// TrendPoint is one marker on a country's trend line.
type TrendPoint struct {
	DateTime  time.Time `json:"date_time"`
	Magnitude float64   `json:"magnitude"`
}

// TrendSeries is the time-ordered trend line for one country.
type TrendSeries struct {
	Country string       `json:"country"`
	Points  []TrendPoint `json:"points"`
}

// GeoBounds is the lat/lon rectangle enclosing the map points. West can
// exceed East when the rectangle crosses the antimeridian.
type GeoBounds struct {
	South     float64 `json:"south"`
	West      float64 `json:"west"`
	North     float64 `json:"north"`
	East      float64 `json:"east"`
	CenterLat float64 `json:"center_lat"`
	CenterLon float64 `json:"center_lon"`
}

// MapTrendResult feeds the bubble map and the trend line chart.
type MapTrendResult struct {
	Title  string        `json:"title"`
	Points []GeoPoint    `json:"points"`
	Trend  []TrendSeries `json:"trend"`
	Bounds *GeoBounds    `json:"bounds,omitempty"`
}

// MapTrend selects the records of country within years and returns them as
// map points and per-country trend lines. Series appear in the order their
// country first occurs in the table; points within a series are time-ordered.
func MapTrend(t *Table, country string, years YearRange) MapTrendResult {
	rows := t.Select(InYears(years), InCountry(country))

	res := MapTrendResult{
		Title:  fmt.Sprintf("Earthquakes in %s from %s", country, years),
		Points: make([]GeoPoint, 0, len(rows)),
		Trend:  make([]TrendSeries, 0),
	}

	index := make(map[string]int)
	rect := s2.EmptyRect()
	for _, e := range rows {
		res.Points = append(res.Points, GeoPoint{
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
			Magnitude: e.Magnitude,
			Country:   e.Country,
			DateTime:  e.DateTime,
		})
		rect = rect.AddPoint(s2.LatLngFromDegrees(e.Latitude, e.Longitude))

		i, ok := index[e.Country]
		if !ok {
			i = len(res.Trend)
			index[e.Country] = i
			res.Trend = append(res.Trend, TrendSeries{Country: e.Country})
		}
		res.Trend[i].Points = append(res.Trend[i].Points, TrendPoint{DateTime: e.DateTime, Magnitude: e.Magnitude})
	}

	for i := range res.Trend {
		slices.SortStableFunc(res.Trend[i].Points, func(a, b TrendPoint) int {
			return a.DateTime.Compare(b.DateTime)
		})
	}

	if !rect.IsEmpty() {
		center := rect.Center()
		res.Bounds = &GeoBounds{
			South:     rect.Lo().Lat.Degrees(),
			West:      rect.Lo().Lng.Degrees(),
			North:     rect.Hi().Lat.Degrees(),
			East:      rect.Hi().Lng.Degrees(),
			CenterLat: center.Lat.Degrees(),
			CenterLon: center.Lng.Degrees(),
		}
	}

	return res
}
