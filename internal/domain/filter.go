package domain

import "fmt"

// AllCountries is the country selector value that disables country filtering.
const AllCountries = "All Countries"

// Bounds of the year slider.
const (
	FirstYear = 2001
	LastYear  = 2023
)

// YearRange is an inclusive range of calendar years.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// FullYears covers the whole catalogue.
var FullYears = YearRange{Min: FirstYear, Max: LastYear}

// Contains reports whether year lies within the range, bounds included.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

func (r YearRange) String() string {
	return fmt.Sprintf("%d to %d", r.Min, r.Max)
}

// Predicate tests a single record.
type Predicate func(Earthquake) bool

// InYears keeps records whose event year lies within r.
func InYears(r YearRange) Predicate {
	return func(e Earthquake) bool { return r.Contains(e.Year()) }
}

// InCountry keeps records from country. AllCountries keeps everything.
func InCountry(country string) Predicate {
	if country == AllCountries {
		return func(Earthquake) bool { return true }
	}
	return func(e Earthquake) bool { return e.Country == country }
}

// InDepthLabels keeps records whose depth label is one of labels.
// An empty label set keeps nothing.
func InDepthLabels(labels []DepthLabel) Predicate {
	set := make(map[DepthLabel]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return func(e Earthquake) bool {
		_, ok := set[e.DepthLabel]
		return ok
	}
}

// AtLeastMagnitude keeps records with magnitude >= threshold.
func AtLeastMagnitude(threshold float64) Predicate {
	return func(e Earthquake) bool { return e.Magnitude >= threshold }
}

func matchAll(e Earthquake, preds []Predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}
