package chart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	t2010 = time.Date(2010, 2, 27, 6, 34, 0, 0, time.UTC)
	t2015 = time.Date(2015, 9, 16, 22, 54, 0, 0, time.UTC)
)

func mapResult() domain.MapTrendResult {
	return domain.MapTrendResult{
		Title: "Earthquakes in Chile from 2010 to 2015",
		Points: []domain.GeoPoint{
			{Latitude: -36.1, Longitude: -72.9, Magnitude: 8.8, Country: "Chile", DateTime: t2010},
			{Latitude: -31.6, Longitude: -71.7, Magnitude: 8.3, Country: "Chile", DateTime: t2015},
		},
		Trend: []domain.TrendSeries{{
			Country: "Chile",
			Points: []domain.TrendPoint{
				{DateTime: t2010, Magnitude: 8.8},
				{DateTime: t2015, Magnitude: 8.3},
			},
		}},
		Bounds: &domain.GeoBounds{South: -36.1, West: -72.9, North: -31.6, East: -71.7, CenterLat: -33.85, CenterLon: -72.3},
	}
}

func TestBubbleMap(t *testing.T) {
	fig := BubbleMap(mapResult())

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "scattergeo", tr.Type)
	assert.Equal(t, []float64{-36.1, -31.6}, tr.Lat)
	assert.Equal(t, []float64{8.8, 8.3}, tr.Marker.Color)
	assert.Equal(t, "Oranges", tr.Marker.ColorScale)
	assert.InDelta(t, 2*8.8/225, tr.Marker.SizeRef, 1e-9)
	assert.Equal(t, "Chile<br>2010-02-27 06:34:00", tr.Text[0])

	require.NotNil(t, fig.Layout.Geo.Center)
	assert.InDelta(t, -33.85, fig.Layout.Geo.Center.Lat, 1e-9)
	assert.Equal(t, [2]float64{-72.9, -71.7}, fig.Layout.Geo.LonAxis.Range)
	assert.Equal(t, "Earthquakes in Chile from 2010 to 2015", fig.Layout.Title.Text)
}

func TestBubbleMap_Empty(t *testing.T) {
	fig := BubbleMap(domain.MapTrendResult{Title: "Earthquakes in Chile from 2001 to 2002"})

	assert.Empty(t, fig.Data)
	b, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestBubbleMap_AntimeridianSkipsRanges(t *testing.T) {
	res := mapResult()
	res.Bounds = &domain.GeoBounds{South: -20, West: 170, North: -10, East: -170, CenterLat: -15, CenterLon: 180}

	fig := BubbleMap(res)
	assert.NotNil(t, fig.Layout.Geo.Center)
	assert.Nil(t, fig.Layout.Geo.LonAxis)
}

func TestTrendLine(t *testing.T) {
	fig := TrendLine(mapResult())

	require.Len(t, fig.Data, 1)
	assert.Equal(t, "lines+markers", fig.Data[0].Mode)
	assert.Equal(t, "Chile", fig.Data[0].Name)
	assert.Equal(t, []any{"2010-02-27 06:34:00", "2015-09-16 22:54:00"}, fig.Data[0].X)
	assert.Equal(t, 300, fig.Layout.Height)
}

func TestDepthBar_SkipsMissingCells(t *testing.T) {
	res := domain.DepthCountsResult{
		Title:   "Number of earthquakes according to the depth label in All Countries from 2010 to 2015",
		Columns: []domain.DepthLabel{domain.DepthLow, domain.DepthHigh},
		Rows: []domain.DepthCountRow{
			{Year: 2010, Counts: map[domain.DepthLabel]int{domain.DepthLow: 1}},
			{Year: 2012, Counts: map[domain.DepthLabel]int{domain.DepthHigh: 1}},
			{Year: 2015, Counts: map[domain.DepthLabel]int{domain.DepthLow: 1}},
		},
	}

	fig := DepthBar(res)

	assert.Equal(t, "stack", fig.Layout.BarMode)
	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Low", fig.Data[0].Name)
	assert.Equal(t, []any{2010, 2015}, fig.Data[0].X)
	assert.Equal(t, []any{1, 1}, fig.Data[0].Y)
	assert.Equal(t, "High", fig.Data[1].Name)
	assert.Equal(t, []any{2012}, fig.Data[1].X)
}

func TestDepthBar_EmptyKeepsTitleOnly(t *testing.T) {
	fig := DepthBar(domain.DepthCountsResult{Title: "title"})

	assert.Empty(t, fig.Data)
	assert.Equal(t, "title", fig.Layout.Title.Text)
	assert.Empty(t, fig.Layout.BarMode)
	assert.Nil(t, fig.Layout.XAxis)
}

func TestDepthScatter(t *testing.T) {
	fig := DepthScatter(domain.DepthScatterResult{
		Title: "scatter",
		Series: []domain.ScatterSeries{
			{Label: domain.DepthLow, Points: []domain.ScatterPoint{{Depth: 22.9, Magnitude: 8.8}}},
			{Label: domain.DepthHigh, Points: []domain.ScatterPoint{{Depth: 598.1, Magnitude: 8.3}}},
		},
	})

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "markers", fig.Data[0].Mode)
	assert.Equal(t, "cross", fig.Data[0].Marker.Symbol)
	assert.Equal(t, 8, fig.Data[0].Marker.Size)
	assert.Equal(t, []any{598.1}, fig.Data[1].X)
}

func TestTopCountriesPie(t *testing.T) {
	fig := TopCountriesPie(domain.TopCountriesResult{
		Title: "Top 5 earthquakes from 2001 to 2023 with mag >= 7.0",
		Slices: []domain.PieSlice{
			{Country: "Chile", Count: 2, Percent: 66.7},
			{Country: "Japan", Count: 1, Percent: 33.3},
		},
	})

	require.Len(t, fig.Data, 1)
	tr := fig.Data[0]
	assert.Equal(t, "pie", tr.Type)
	assert.Equal(t, []string{"Chile", "Japan"}, tr.Labels)
	assert.Equal(t, []int{2, 1}, tr.Values)
	assert.Equal(t, "inside", tr.TextPosition)
	assert.Equal(t, "percent+label", tr.TextInfo)
	assert.Contains(t, tr.HoverTemplate, "# of earthquakes")
}

func TestTopCountriesPie_Empty(t *testing.T) {
	fig := TopCountriesPie(domain.TopCountriesResult{Title: "Top 5 earthquakes from 2001 to 2023 with mag >= 12.0"})

	assert.Empty(t, fig.Data)
	assert.Contains(t, fig.Layout.Title.Text, "12.0")
}
