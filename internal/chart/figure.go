// Package chart renders engine results as Plotly figure JSON.
package chart

import "time"

// plotlyTimeLayout is a timestamp layout Plotly parses as a date axis value.
const plotlyTimeLayout = "2006-01-02 15:04:05"

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is the subset of Plotly trace attributes the dashboard uses.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	X             []any     `json:"x,omitempty"`
	Y             []any     `json:"y,omitempty"`
	Lat           []float64 `json:"lat,omitempty"`
	Lon           []float64 `json:"lon,omitempty"`
	Text          []string  `json:"text,omitempty"`
	Labels        []string  `json:"labels,omitempty"`
	Values        []int     `json:"values,omitempty"`
	TextPosition  string    `json:"textposition,omitempty"`
	TextInfo      string    `json:"textinfo,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
}

// Marker styles trace markers.
type Marker struct {
	Size       any       `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
	Color      []float64 `json:"color,omitempty"`
	ColorScale string    `json:"colorscale,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	Symbol     string    `json:"symbol,omitempty"`
}

// Layout is the subset of Plotly layout attributes the dashboard uses.
type Layout struct {
	Title   *Title `json:"title,omitempty"`
	Height  int    `json:"height,omitempty"`
	BarMode string `json:"barmode,omitempty"`
	XAxis   *Axis  `json:"xaxis,omitempty"`
	YAxis   *Axis  `json:"yaxis,omitempty"`
	Geo     *Geo   `json:"geo,omitempty"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Axis configures a cartesian axis.
type Axis struct {
	Title *Title `json:"title,omitempty"`
}

// Geo configures the map projection.
type Geo struct {
	ShowCountries bool      `json:"showcountries"`
	Center        *GeoPoint `json:"center,omitempty"`
	LatAxis       *Range    `json:"lataxis,omitempty"`
	LonAxis       *Range    `json:"lonaxis,omitempty"`
}

// GeoPoint is a map centre.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Range bounds a geo axis.
type Range struct {
	Range [2]float64 `json:"range"`
}

func titled(text string) Layout {
	return Layout{Title: &Title{Text: text}}
}

func axis(text string) *Axis {
	return &Axis{Title: &Title{Text: text}}
}

func formatTime(t time.Time) string {
	return t.Format(plotlyTimeLayout)
}
