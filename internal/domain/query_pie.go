package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// TopCountriesLimit caps the number of pie slices.
const TopCountriesLimit = 5

// SliceOrder decides which country groups make the cut.
type SliceOrder string

const (
	// OrderGrouping keeps the first groups of a grouped count, which are
	// ordered by country name. This is what the dashboard has always shown.
	OrderGrouping SliceOrder = "grouping"
	// OrderCountDesc keeps the countries with the most earthquakes.
	OrderCountDesc SliceOrder = "count"
)

// ParseSliceOrder maps a config or query value to a SliceOrder.
func ParseSliceOrder(s string) (SliceOrder, bool) {
	switch SliceOrder(strings.ToLower(strings.TrimSpace(s))) {
	case OrderGrouping, "":
		return OrderGrouping, true
	case OrderCountDesc:
		return OrderCountDesc, true
	default:
		return "", false
	}
}

// PieSlice is one country's share of the pie.
type PieSlice struct {
	Country string  `json:"country"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// TopCountriesResult feeds the top-countries pie chart.
type TopCountriesResult struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
}

// TopCountries counts earthquakes of at least minMagnitude within years per
// country, across all countries, and keeps at most TopCountriesLimit groups
// picked by order. Records without a country are not counted. Percentages are
// relative to the slices kept.
func TopCountries(t *Table, years YearRange, minMagnitude float64, order SliceOrder) TopCountriesResult {
	res := TopCountriesResult{
		Title:  fmt.Sprintf("Top %d earthquakes from %s with mag >= %s", TopCountriesLimit, years, formatThreshold(minMagnitude)),
		Slices: make([]PieSlice, 0, TopCountriesLimit),
	}

	counts := make(map[string]int)
	for _, e := range t.Select(InYears(years), AtLeastMagnitude(minMagnitude)) {
		if e.Country == "" {
			continue
		}
		counts[e.Country]++
	}

	groups := make([]PieSlice, 0, len(counts))
	for c, n := range counts {
		groups = append(groups, PieSlice{Country: c, Count: n})
	}
	slices.SortFunc(groups, func(a, b PieSlice) int { return strings.Compare(a.Country, b.Country) })
	if order == OrderCountDesc {
		slices.SortStableFunc(groups, func(a, b PieSlice) int { return b.Count - a.Count })
	}

	if len(groups) > TopCountriesLimit {
		groups = groups[:TopCountriesLimit]
	}

	var total int
	for _, g := range groups {
		total += g.Count
	}
	for _, g := range groups {
		g.Percent = 100 * float64(g.Count) / float64(total)
		res.Slices = append(res.Slices, g)
	}

	return res
}

// formatThreshold prints a magnitude with at least one decimal place, so 7
// renders as "7.0" the way the slider shows it.
func formatThreshold(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
