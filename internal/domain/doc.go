// Package domain models the earthquake catalogue behind the dashboard and the
// filter and aggregate queries that feed each chart.
//
// # Data Source
//
// The catalogue is a CSV export of significant earthquakes (2001-2023), one
// row per event. Only the columns the dashboard reads are modelled:
//
//	date_time    "DD-MM-YYYY HH:MM", e.g. "22-11-2022 02:03" (UTC)
//	country      free text, may be empty for offshore events
//	latitude     decimal degrees
//	longitude    decimal degrees
//	magnitude    moment magnitude, e.g. 7.0
//	depth        hypocentre depth in km
//	depth_label  "Low", "Mid" or "High", assigned by the upstream export
//
// The export ends with a few non-data footer rows; the CSV source drops them
// before rows reach this package.
//
// # Queries
//
// The table is built once and never mutated. Each chart is computed from
// scratch by one pure function:
//
//	MapTrend       points for the bubble map and per-country trend lines
//	DepthCounts    yearly counts pivoted by depth label (stacked bar)
//	DepthScatter   depth vs magnitude grouped by depth label
//	TopCountries   earthquake counts for at most five countries (pie)
//
// Filters are plain predicates over a record combined with logical AND. An
// empty selection is a valid result, never an error.
package domain
