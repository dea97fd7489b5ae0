package domain

import (
	"fmt"
	"slices"
)

// DepthCountRow holds one year of the pivot. A label missing from Counts had
// no earthquakes that year; it is not the same as a zero count.
type DepthCountRow struct {
	Year   int                `json:"year"`
	Counts map[DepthLabel]int `json:"counts"`
}

// Count returns the cell for label and whether the cell exists.
func (r DepthCountRow) Count(label DepthLabel) (int, bool) {
	n, ok := r.Counts[label]
	return n, ok
}

// DepthCountsResult feeds the depth-stacked bar chart.
type DepthCountsResult struct {
	Title   string          `json:"title"`
	Columns []DepthLabel    `json:"columns"`
	Rows    []DepthCountRow `json:"rows"`
}

// Empty reports whether the pivot has no rows or no columns.
func (r DepthCountsResult) Empty() bool {
	return len(r.Rows) == 0 || len(r.Columns) == 0
}

// Total sums every present cell.
func (r DepthCountsResult) Total() int {
	var n int
	for _, row := range r.Rows {
		for _, c := range row.Counts {
			n += c
		}
	}
	return n
}

// DepthCounts counts the records of country within years by (year, depth
// label) and pivots them to one row per year. Rows cover every year with at
// least one record, ascending. Columns are the selected labels that occur in
// the pivot, in Low, Mid, High order.
func DepthCounts(t *Table, country string, years YearRange, labels []DepthLabel) DepthCountsResult {
	res := DepthCountsResult{
		Title:   fmt.Sprintf("Number of earthquakes according to the depth label in %s from %s", country, years),
		Columns: make([]DepthLabel, 0, len(DepthLabels)),
		Rows:    make([]DepthCountRow, 0),
	}

	pivot := make(map[int]map[DepthLabel]int)
	present := make(map[DepthLabel]bool)
	for _, e := range t.Select(InYears(years), InCountry(country)) {
		cells, ok := pivot[e.Year()]
		if !ok {
			cells = make(map[DepthLabel]int)
			pivot[e.Year()] = cells
		}
		cells[e.DepthLabel]++
		present[e.DepthLabel] = true
	}

	for _, l := range DepthLabels {
		if present[l] && slices.Contains(labels, l) {
			res.Columns = append(res.Columns, l)
		}
	}
	if len(res.Columns) == 0 || len(pivot) == 0 {
		res.Columns = res.Columns[:0]
		return res
	}

	yearKeys := make([]int, 0, len(pivot))
	for y := range pivot {
		yearKeys = append(yearKeys, y)
	}
	slices.Sort(yearKeys)

	for _, y := range yearKeys {
		row := DepthCountRow{Year: y, Counts: make(map[DepthLabel]int, len(res.Columns))}
		for _, l := range res.Columns {
			if n, ok := pivot[y][l]; ok {
				row.Counts[l] = n
			}
		}
		res.Rows = append(res.Rows, row)
	}

	return res
}
