package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateTimeLayout is the timestamp format used by the catalogue export.
const DateTimeLayout = "02-01-2006 15:04"

// DepthLabel buckets an earthquake by hypocentre depth.
type DepthLabel string

const (
	DepthLow  DepthLabel = "Low"
	DepthMid  DepthLabel = "Mid"
	DepthHigh DepthLabel = "High"
)

// DepthLabels lists every depth label in display order.
var DepthLabels = []DepthLabel{DepthLow, DepthMid, DepthHigh}

// Valid reports whether l is one of the known depth labels.
func (l DepthLabel) Valid() bool {
	switch l {
	case DepthLow, DepthMid, DepthHigh:
		return true
	default:
		return false
	}
}

// ParseDepthLabel matches s against the known labels, ignoring case and surrounding space.
func ParseDepthLabel(s string) (DepthLabel, bool) {
	s = strings.TrimSpace(s)
	for _, l := range DepthLabels {
		if strings.EqualFold(s, string(l)) {
			return l, true
		}
	}
	return "", false
}

// Earthquake is one row of the catalogue.
type Earthquake struct {
	DateTime   time.Time  `json:"date_time"`
	Country    string     `json:"country"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Magnitude  float64    `json:"magnitude"`
	Depth      float64    `json:"depth"`
	DepthLabel DepthLabel `json:"depth_label"`
}

// Year returns the calendar year of the event.
func (e Earthquake) Year() int {
	return e.DateTime.Year()
}

// RawRecord is a catalogue row before parsing, keyed by CSV column name.
// The same JSON shape is published to and read from Kafka.
type RawRecord struct {
	DateTime   string `json:"date_time"`
	Country    string `json:"country"`
	Latitude   string `json:"latitude"`
	Longitude  string `json:"longitude"`
	Magnitude  string `json:"magnitude"`
	Depth      string `json:"depth"`
	DepthLabel string `json:"depth_label"`
}

// RequiredColumns are the CSV headers a catalogue export must contain.
var RequiredColumns = []string{
	"date_time", "country", "latitude", "longitude", "magnitude", "depth", "depth_label",
}

// ParseRecord converts a raw row into an Earthquake. Every numeric column and
// the timestamp must parse; the error names the offending column.
func ParseRecord(raw RawRecord) (Earthquake, error) {
	ts, err := ParseDateTime(raw.DateTime)
	if err != nil {
		return Earthquake{}, err
	}

	lat, err := parseFloatColumn("latitude", raw.Latitude)
	if err != nil {
		return Earthquake{}, err
	}
	lon, err := parseFloatColumn("longitude", raw.Longitude)
	if err != nil {
		return Earthquake{}, err
	}
	mag, err := parseFloatColumn("magnitude", raw.Magnitude)
	if err != nil {
		return Earthquake{}, err
	}
	depth, err := parseFloatColumn("depth", raw.Depth)
	if err != nil {
		return Earthquake{}, err
	}

	label, ok := ParseDepthLabel(raw.DepthLabel)
	if !ok {
		return Earthquake{}, goerr.New("invalid depth label",
			goerr.V("column", "depth_label"), goerr.V("value", raw.DepthLabel))
	}

	return Earthquake{
		DateTime:   ts,
		Country:    strings.TrimSpace(raw.Country),
		Latitude:   lat,
		Longitude:  lon,
		Magnitude:  mag,
		Depth:      depth,
		DepthLabel: label,
	}, nil
}

// ParseDateTime parses a "DD-MM-YYYY HH:MM" timestamp as UTC.
func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid timestamp",
			goerr.V("column", "date_time"), goerr.V("value", s))
	}
	return t, nil
}

// FormatRecord renders an Earthquake back into its raw column form.
func FormatRecord(e Earthquake) RawRecord {
	return RawRecord{
		DateTime:   e.DateTime.Format(DateTimeLayout),
		Country:    e.Country,
		Latitude:   strconv.FormatFloat(e.Latitude, 'f', -1, 64),
		Longitude:  strconv.FormatFloat(e.Longitude, 'f', -1, 64),
		Magnitude:  strconv.FormatFloat(e.Magnitude, 'f', -1, 64),
		Depth:      strconv.FormatFloat(e.Depth, 'f', -1, 64),
		DepthLabel: string(e.DepthLabel),
	}
}

func parseFloatColumn(column, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid number",
			goerr.V("column", column), goerr.V("value", s))
	}
	return v, nil
}
