package domain

import "fmt"

// Scatter marker styling shared by every point.
const (
	ScatterMarkerSize   = 8
	ScatterMarkerSymbol = "cross"
)

// ScatterPoint plots depth against magnitude.
type ScatterPoint struct {
	Depth     float64 `json:"depth"`
	Magnitude float64 `json:"magnitude"`
}

// ScatterSeries groups the points of one depth label.
type ScatterSeries struct {
	Label  DepthLabel     `json:"label"`
	Points []ScatterPoint `json:"points"`
}

// DepthScatterResult feeds the depth/magnitude scatter plot.
type DepthScatterResult struct {
	Title  string          `json:"title"`
	Series []ScatterSeries `json:"series"`
}

// Len returns the number of points across all series.
func (r DepthScatterResult) Len() int {
	var n int
	for _, s := range r.Series {
		n += len(s.Points)
	}
	return n
}

// DepthScatter returns one point per record of country within years whose
// depth label is selected, grouped by label in order of first appearance.
func DepthScatter(t *Table, country string, labels []DepthLabel, years YearRange) DepthScatterResult {
	res := DepthScatterResult{
		Title:  fmt.Sprintf("Distribution of earthquakes according to depth label in %s from %s per depth label", country, years),
		Series: make([]ScatterSeries, 0, len(DepthLabels)),
	}

	index := make(map[DepthLabel]int)
	for _, e := range t.Select(InYears(years), InCountry(country), InDepthLabels(labels)) {
		i, ok := index[e.DepthLabel]
		if !ok {
			i = len(res.Series)
			index[e.DepthLabel] = i
			res.Series = append(res.Series, ScatterSeries{Label: e.DepthLabel})
		}
		res.Series[i].Points = append(res.Series[i].Points, ScatterPoint{Depth: e.Depth, Magnitude: e.Magnitude})
	}

	return res
}
