package domain

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapTrend(t *testing.T) {
	tbl := testCatalogue(t)

	t.Run("all countries", func(t *testing.T) {
		res := MapTrend(tbl, AllCountries, scenarioYears)

		assert.Equal(t, "Earthquakes in All Countries from 2010 to 2015", res.Title)
		require.Len(t, res.Points, 4)
		assert.Equal(t, "Chile", res.Points[0].Country)
		assert.Equal(t, 7.2, res.Points[0].Magnitude)
		assert.Equal(t, -36.12, res.Points[0].Latitude)
		assert.Equal(t, -72.89, res.Points[0].Longitude)

		want := []TrendSeries{
			{Country: "Chile", Points: []TrendPoint{
				{DateTime: utc(2010, 2, 27, 6, 34), Magnitude: 7.2},
				{DateTime: utc(2015, 9, 16, 22, 54), Magnitude: 8.3},
			}},
			{Country: "Japan", Points: []TrendPoint{
				{DateTime: utc(2011, 3, 11, 5, 46), Magnitude: 9.1},
				{DateTime: utc(2012, 5, 10, 4, 12), Magnitude: 6.8},
			}},
		}
		if diff := cmp.Diff(want, res.Trend); diff != "" {
			t.Errorf("trend mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("single country", func(t *testing.T) {
		res := MapTrend(tbl, "Japan", FullYears)

		assert.Equal(t, "Earthquakes in Japan from 2001 to 2023", res.Title)
		assert.Len(t, res.Points, 3)
		require.Len(t, res.Trend, 1)
		assert.Equal(t, "Japan", res.Trend[0].Country)
		assert.Len(t, res.Trend[0].Points, 3)

		require.NotNil(t, res.Bounds)
		assert.InDelta(t, 36.10, res.Bounds.South, 1e-6)
		assert.InDelta(t, 45.62, res.Bounds.North, 1e-6)
		assert.InDelta(t, 140.09, res.Bounds.West, 1e-6)
		assert.InDelta(t, 148.96, res.Bounds.East, 1e-6)
	})

	t.Run("empty selection", func(t *testing.T) {
		res := MapTrend(tbl, "Atlantis", FullYears)

		assert.Equal(t, "Earthquakes in Atlantis from 2001 to 2023", res.Title)
		assert.Empty(t, res.Points)
		assert.Empty(t, res.Trend)
		assert.Nil(t, res.Bounds)
	})
}

func TestMapTrend_EveryPointMatchesFilter(t *testing.T) {
	tbl := testCatalogue(t)
	for _, country := range append([]string{AllCountries, "Atlantis"}, tbl.Countries()...) {
		for _, years := range []YearRange{FullYears, scenarioYears, {Min: 2001, Max: 2001}, {Min: 2019, Max: 2023}} {
			res := MapTrend(tbl, country, years)

			want := 0
			for _, e := range tbl.Records() {
				if years.Contains(e.Year()) && (country == AllCountries || e.Country == country) {
					want++
				}
			}
			assert.Len(t, res.Points, want, "%s %s", country, years)

			for _, p := range res.Points {
				assert.True(t, years.Contains(p.DateTime.Year()))
				if country != AllCountries {
					assert.Equal(t, country, p.Country)
				}
			}
		}
	}
}

func TestDepthCounts(t *testing.T) {
	tbl := testCatalogue(t)

	t.Run("absent labels are omitted", func(t *testing.T) {
		res := DepthCounts(tbl, AllCountries, scenarioYears, DepthLabels)

		assert.Equal(t, "Number of earthquakes according to the depth label in All Countries from 2010 to 2015", res.Title)
		assert.Equal(t, []DepthLabel{DepthLow, DepthHigh}, res.Columns)
		assert.False(t, res.Empty())

		want := []DepthCountRow{
			{Year: 2010, Counts: map[DepthLabel]int{DepthLow: 1}},
			{Year: 2011, Counts: map[DepthLabel]int{DepthLow: 1}},
			{Year: 2012, Counts: map[DepthLabel]int{DepthHigh: 1}},
			{Year: 2015, Counts: map[DepthLabel]int{DepthLow: 1}},
		}
		if diff := cmp.Diff(want, res.Rows); diff != "" {
			t.Errorf("rows mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing cell is not zero", func(t *testing.T) {
		res := DepthCounts(tbl, AllCountries, scenarioYears, DepthLabels)
		require.Len(t, res.Rows, 4)

		_, ok := res.Rows[2].Count(DepthLow)
		assert.False(t, ok)
		n, ok := res.Rows[2].Count(DepthHigh)
		assert.True(t, ok)
		assert.Equal(t, 1, n)
	})

	t.Run("years without a selected label keep their row", func(t *testing.T) {
		res := DepthCounts(tbl, AllCountries, scenarioYears, []DepthLabel{DepthHigh})

		assert.Equal(t, []DepthLabel{DepthHigh}, res.Columns)
		assert.Len(t, res.Rows, 4)
		assert.Equal(t, 1, res.Total())
	})

	t.Run("selected label with no records", func(t *testing.T) {
		res := DepthCounts(tbl, AllCountries, scenarioYears, []DepthLabel{DepthMid})

		assert.True(t, res.Empty())
		assert.Empty(t, res.Rows)
		assert.Empty(t, res.Columns)
		assert.NotEmpty(t, res.Title)
	})

	t.Run("no labels selected", func(t *testing.T) {
		res := DepthCounts(tbl, AllCountries, FullYears, nil)
		assert.True(t, res.Empty())
	})

	t.Run("no records", func(t *testing.T) {
		res := DepthCounts(tbl, "Atlantis", FullYears, DepthLabels)
		assert.True(t, res.Empty())
	})

	t.Run("selection order does not matter", func(t *testing.T) {
		a := DepthCounts(tbl, AllCountries, FullYears, []DepthLabel{DepthHigh, DepthLow, DepthMid})
		b := DepthCounts(tbl, AllCountries, FullYears, DepthLabels)
		assert.Equal(t, b, a)
		assert.Equal(t, DepthLabels, a.Columns)
	})
}

func TestDepthCounts_Scenario(t *testing.T) {
	tbl := NewTable([]Earthquake{
		quake(t, "01-06-2010 10:00", "Chile", DepthLow, 10, 7.1, -30, -71),
		quake(t, "01-06-2013 10:00", "Japan", DepthHigh, 300, 7.3, 35, 140),
		quake(t, "01-06-2015 10:00", "Peru", DepthLow, 15, 7.0, -10, -76),
		quake(t, "01-06-2020 10:00", "Peru", DepthMid, 90, 7.0, -10, -76),
	})

	res := DepthCounts(tbl, AllCountries, scenarioYears, []DepthLabel{DepthLow, DepthHigh})

	assert.Equal(t, []DepthLabel{DepthLow, DepthHigh}, res.Columns)
	assert.Equal(t, 3, res.Total())
	assert.Len(t, res.Rows, 3)
}

func TestDepthCounts_TotalMatchesFilter(t *testing.T) {
	tbl := testCatalogue(t)
	selections := [][]DepthLabel{nil, {DepthLow}, {DepthMid, DepthHigh}, DepthLabels}
	for _, country := range []string{AllCountries, "Japan", "Chile"} {
		for _, labels := range selections {
			res := DepthCounts(tbl, country, FullYears, labels)
			want := len(tbl.Select(InYears(FullYears), InCountry(country), InDepthLabels(labels)))
			assert.Equal(t, want, res.Total(), "%s %v", country, labels)
		}
	}
}

func TestDepthScatter(t *testing.T) {
	tbl := testCatalogue(t)

	t.Run("grouped by label in order of appearance", func(t *testing.T) {
		res := DepthScatter(tbl, AllCountries, []DepthLabel{DepthLow, DepthHigh}, FullYears)

		assert.Equal(t, "Distribution of earthquakes according to depth label in All Countries from 2001 to 2023 per depth label", res.Title)
		require.Len(t, res.Series, 2)
		assert.Equal(t, DepthLow, res.Series[0].Label)
		assert.Len(t, res.Series[0].Points, 6)
		assert.Equal(t, DepthHigh, res.Series[1].Label)
		assert.Equal(t, []ScatterPoint{{Depth: 400, Magnitude: 6.8}}, res.Series[1].Points)
		assert.Equal(t, 7, res.Len())
	})

	t.Run("country and years apply", func(t *testing.T) {
		res := DepthScatter(tbl, "Japan", DepthLabels, YearRange{Min: 2011, Max: 2020})
		assert.Equal(t, 3, res.Len())
	})

	t.Run("no labels selected", func(t *testing.T) {
		res := DepthScatter(tbl, AllCountries, nil, FullYears)
		assert.Empty(t, res.Series)
		assert.Zero(t, res.Len())
	})

	t.Run("points are exactly the filtered records", func(t *testing.T) {
		for _, labels := range [][]DepthLabel{{DepthLow}, {DepthMid}, DepthLabels} {
			res := DepthScatter(tbl, AllCountries, labels, FullYears)
			want := tbl.Select(InYears(FullYears), InDepthLabels(labels))
			assert.Equal(t, len(want), res.Len())

			byLabel := map[DepthLabel][]ScatterPoint{}
			for _, e := range want {
				byLabel[e.DepthLabel] = append(byLabel[e.DepthLabel], ScatterPoint{Depth: e.Depth, Magnitude: e.Magnitude})
			}
			for _, s := range res.Series {
				assert.Equal(t, byLabel[s.Label], s.Points)
			}
		}
	})
}

func TestTopCountries(t *testing.T) {
	tbl := testCatalogue(t)

	t.Run("grouping order keeps the first five names", func(t *testing.T) {
		res := TopCountries(tbl, FullYears, 7.0, OrderGrouping)

		assert.Equal(t, "Top 5 earthquakes from 2001 to 2023 with mag >= 7.0", res.Title)
		want := []string{"Chile", "Ecuador", "India", "Indonesia", "Japan"}
		assert.Equal(t, want, sliceCountries(res.Slices))
		assert.Equal(t, 2, res.Slices[0].Count)
		assert.Equal(t, 2, res.Slices[4].Count)
		assert.InDelta(t, 100*2.0/7.0, res.Slices[0].Percent, 1e-9)
	})

	t.Run("count order keeps the busiest countries", func(t *testing.T) {
		res := TopCountries(tbl, FullYears, 7.0, OrderCountDesc)

		want := []string{"Chile", "Japan", "Ecuador", "India", "Indonesia"}
		assert.Equal(t, want, sliceCountries(res.Slices))
	})

	t.Run("fewer than five countries", func(t *testing.T) {
		res := TopCountries(tbl, scenarioYears, 6.5, OrderGrouping)

		assert.Equal(t, []string{"Chile", "Japan"}, sliceCountries(res.Slices))
		var pct float64
		for _, s := range res.Slices {
			pct += s.Percent
		}
		assert.InDelta(t, 100, pct, 1e-9)
	})

	t.Run("threshold above the strongest earthquake", func(t *testing.T) {
		res := TopCountries(tbl, FullYears, 9.5, OrderGrouping)

		assert.Empty(t, res.Slices)
		assert.Equal(t, "Top 5 earthquakes from 2001 to 2023 with mag >= 9.5", res.Title)
	})

	t.Run("records without a country are ignored", func(t *testing.T) {
		res := TopCountries(tbl, YearRange{Min: 2018, Max: 2018}, 6.0, OrderGrouping)
		assert.Empty(t, res.Slices)
	})
}

func TestTopCountries_SliceCountsAreExact(t *testing.T) {
	tbl := testCatalogue(t)
	for _, threshold := range []float64{6.0, 7.0, 7.5, 8.0, 9.1} {
		res := TopCountries(tbl, FullYears, threshold, OrderGrouping)

		truth := map[string]int{}
		for _, e := range tbl.Select(AtLeastMagnitude(threshold)) {
			if e.Country != "" {
				truth[e.Country]++
			}
		}
		assert.Len(t, res.Slices, min(TopCountriesLimit, len(truth)), "threshold %v", threshold)
		for _, s := range res.Slices {
			assert.Equal(t, truth[s.Country], s.Count, "%s at %v", s.Country, threshold)
		}
	}
}

func TestQueries_Deterministic(t *testing.T) {
	tbl := testCatalogue(t)
	for i := 0; i < 3; i++ {
		t.Run(fmt.Sprintf("run %d", i), func(t *testing.T) {
			assert.Equal(t, MapTrend(tbl, AllCountries, FullYears), MapTrend(tbl, AllCountries, FullYears))
			assert.Equal(t, DepthCounts(tbl, AllCountries, FullYears, DepthLabels), DepthCounts(tbl, AllCountries, FullYears, DepthLabels))
			assert.Equal(t, DepthScatter(tbl, AllCountries, DepthLabels, FullYears), DepthScatter(tbl, AllCountries, DepthLabels, FullYears))
			assert.Equal(t, TopCountries(tbl, FullYears, 7.0, OrderCountDesc), TopCountries(tbl, FullYears, 7.0, OrderCountDesc))
		})
	}
}

func TestFormatThreshold(t *testing.T) {
	assert.Equal(t, "7.0", formatThreshold(7))
	assert.Equal(t, "6.5", formatThreshold(6.5))
	assert.Equal(t, "9.1", formatThreshold(9.1))
}

func TestParseSliceOrder(t *testing.T) {
	o, ok := ParseSliceOrder("")
	assert.True(t, ok)
	assert.Equal(t, OrderGrouping, o)

	o, ok = ParseSliceOrder("COUNT")
	assert.True(t, ok)
	assert.Equal(t, OrderCountDesc, o)

	_, ok = ParseSliceOrder("random")
	assert.False(t, ok)
}

func sliceCountries(slices []PieSlice) []string {
	out := make([]string, 0, len(slices))
	for _, s := range slices {
		out = append(out, s.Country)
	}
	return out
}
