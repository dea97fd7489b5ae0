package chart

import (
	"fmt"

	"github.com/couchcryptid/quake-dashboard/internal/domain"
)

const (
	bubbleColorScale = "Oranges"
	bubbleMaxSize    = 15
	trendHeight      = 300
	countHoverLabel  = "# of earthquakes"
)

// MapFigures holds the two charts driven by the geographic query.
type MapFigures struct {
	Map   Figure `json:"map"`
	Trend Figure `json:"trend"`
}

// BubbleMap plots each earthquake at its epicentre, coloured and sized by magnitude.
func BubbleMap(res domain.MapTrendResult) Figure {
	fig := Figure{Data: []Trace{}, Layout: titled(res.Title)}
	fig.Layout.Geo = &Geo{ShowCountries: true}
	if len(res.Points) == 0 {
		return fig
	}

	n := len(res.Points)
	lat := make([]float64, n)
	lon := make([]float64, n)
	mag := make([]float64, n)
	text := make([]string, n)
	maxMag := 0.0
	for i, p := range res.Points {
		lat[i], lon[i], mag[i] = p.Latitude, p.Longitude, p.Magnitude
		text[i] = fmt.Sprintf("%s<br>%s", p.Country, formatTime(p.DateTime))
		maxMag = max(maxMag, p.Magnitude)
	}

	fig.Data = append(fig.Data, Trace{
		Type:          "scattergeo",
		Mode:          "markers",
		Lat:           lat,
		Lon:           lon,
		Text:          text,
		HoverTemplate: "%{text}<br>magnitude=%{marker.color}<extra></extra>",
		Marker: &Marker{
			Size:       mag,
			SizeMode:   "area",
			SizeRef:    sizeRef(maxMag, bubbleMaxSize),
			Color:      mag,
			ColorScale: bubbleColorScale,
			ShowScale:  true,
		},
	})

	if b := res.Bounds; b != nil {
		fig.Layout.Geo.Center = &GeoPoint{Lat: b.CenterLat, Lon: b.CenterLon}
		if b.West <= b.East {
			fig.Layout.Geo.LatAxis = &Range{Range: [2]float64{b.South, b.North}}
			fig.Layout.Geo.LonAxis = &Range{Range: [2]float64{b.West, b.East}}
		}
	}
	return fig
}

// sizeRef scales area-mode markers so the largest value is maxSize pixels across.
func sizeRef(maxValue float64, maxSize int) float64 {
	if maxValue <= 0 {
		return 1
	}
	return 2 * maxValue / float64(maxSize*maxSize)
}

// TrendLine draws one magnitude-over-time line per country.
func TrendLine(res domain.MapTrendResult) Figure {
	fig := Figure{Data: make([]Trace, 0, len(res.Trend)), Layout: titled(res.Title)}
	fig.Layout.Height = trendHeight
	fig.Layout.XAxis = axis("date_time")
	fig.Layout.YAxis = axis("magnitude")

	for _, s := range res.Trend {
		x := make([]any, len(s.Points))
		y := make([]any, len(s.Points))
		for i, p := range s.Points {
			x[i] = formatTime(p.DateTime)
			y[i] = p.Magnitude
		}
		fig.Data = append(fig.Data, Trace{
			Type: "scatter",
			Mode: "lines+markers",
			Name: s.Country,
			X:    x,
			Y:    y,
		})
	}
	return fig
}

// Map renders both figures of the geographic query.
func Map(res domain.MapTrendResult) MapFigures {
	return MapFigures{Map: BubbleMap(res), Trend: TrendLine(res)}
}

// DepthBar stacks yearly counts by depth label. Missing cells produce no bar.
func DepthBar(res domain.DepthCountsResult) Figure {
	fig := Figure{Data: []Trace{}, Layout: titled(res.Title)}
	if res.Empty() {
		return fig
	}
	fig.Layout.BarMode = "stack"
	fig.Layout.XAxis = axis("Year")
	fig.Layout.YAxis = axis("Count")

	for _, label := range res.Columns {
		var x, y []any
		for _, row := range res.Rows {
			n, ok := row.Count(label)
			if !ok {
				continue
			}
			x = append(x, row.Year)
			y = append(y, n)
		}
		fig.Data = append(fig.Data, Trace{
			Type: "bar",
			Name: string(label),
			X:    x,
			Y:    y,
		})
	}
	return fig
}

// DepthScatter plots magnitude against depth, one trace per depth label.
func DepthScatter(res domain.DepthScatterResult) Figure {
	fig := Figure{Data: make([]Trace, 0, len(res.Series)), Layout: titled(res.Title)}
	fig.Layout.XAxis = axis("depth")
	fig.Layout.YAxis = axis("magnitude")

	for _, s := range res.Series {
		x := make([]any, len(s.Points))
		y := make([]any, len(s.Points))
		for i, p := range s.Points {
			x[i] = p.Depth
			y[i] = p.Magnitude
		}
		fig.Data = append(fig.Data, Trace{
			Type: "scatter",
			Mode: "markers",
			Name: string(s.Label),
			X:    x,
			Y:    y,
			Marker: &Marker{
				Size:   domain.ScatterMarkerSize,
				Symbol: domain.ScatterMarkerSymbol,
			},
		})
	}
	return fig
}

// TopCountriesPie shows each kept country's share of the counted earthquakes.
func TopCountriesPie(res domain.TopCountriesResult) Figure {
	fig := Figure{Data: []Trace{}, Layout: titled(res.Title)}
	if len(res.Slices) == 0 {
		return fig
	}

	labels := make([]string, len(res.Slices))
	values := make([]int, len(res.Slices))
	for i, s := range res.Slices {
		labels[i] = s.Country
		values[i] = s.Count
	}
	fig.Data = append(fig.Data, Trace{
		Type:          "pie",
		Labels:        labels,
		Values:        values,
		TextPosition:  "inside",
		TextInfo:      "percent+label",
		HoverTemplate: "country=%{label}<br>" + countHoverLabel + "=%{value}<extra></extra>",
	})
	return fig
}
