package domain

import (
	"slices"
	"time"
)

// Table is the immutable in-memory catalogue every query reads from.
type Table struct {
	records  []Earthquake
	loadedAt time.Time
}

// NewTable copies records into a new Table stamped with the current clock time.
func NewTable(records []Earthquake) *Table {
	return &Table{
		records:  slices.Clone(records),
		loadedAt: clock.Now(),
	}
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// At returns the i-th record.
func (t *Table) At(i int) Earthquake { return t.records[i] }

// Records returns a copy of all records in load order.
func (t *Table) Records() []Earthquake { return slices.Clone(t.records) }

// LoadedAt reports when the table was built.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Select returns the records, in load order, that satisfy every predicate.
func (t *Table) Select(preds ...Predicate) []Earthquake {
	out := make([]Earthquake, 0)
	for _, e := range t.records {
		if matchAll(e, preds) {
			out = append(out, e)
		}
	}
	return out
}

// Countries returns the distinct non-empty countries in ascending order.
func (t *Table) Countries() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range t.records {
		if e.Country == "" {
			continue
		}
		if _, ok := seen[e.Country]; ok {
			continue
		}
		seen[e.Country] = struct{}{}
		out = append(out, e.Country)
	}
	slices.Sort(out)
	return out
}

// MagnitudeRange returns the smallest and largest magnitude. Both are zero for an empty table.
func (t *Table) MagnitudeRange() (lo, hi float64) {
	for i, e := range t.records {
		if i == 0 || e.Magnitude < lo {
			lo = e.Magnitude
		}
		if i == 0 || e.Magnitude > hi {
			hi = e.Magnitude
		}
	}
	return lo, hi
}

// YearRange returns the span of event years present in the table.
func (t *Table) YearRange() YearRange {
	var r YearRange
	for i, e := range t.records {
		y := e.Year()
		if i == 0 || y < r.Min {
			r.Min = y
		}
		if i == 0 || y > r.Max {
			r.Max = y
		}
	}
	return r
}
