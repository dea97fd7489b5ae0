package domain

import (
	"testing"
	"time"
)

func quake(t *testing.T, ts, country string, label DepthLabel, depth, mag, lat, lon float64) Earthquake {
	t.Helper()
	dt, err := ParseDateTime(ts)
	if err != nil {
		t.Fatalf("parse %q: %v", ts, err)
	}
	return Earthquake{
		DateTime:   dt,
		Country:    country,
		Latitude:   lat,
		Longitude:  lon,
		Magnitude:  mag,
		Depth:      depth,
		DepthLabel: label,
	}
}

// testCatalogue is a small slice of the real export, in load order.
func testCatalogue(t *testing.T) *Table {
	t.Helper()
	return NewTable([]Earthquake{
		quake(t, "27-02-2010 06:34", "Chile", DepthLow, 22.9, 7.2, -36.12, -72.89),
		quake(t, "10-05-2012 04:12", "Japan", DepthHigh, 400.0, 6.8, 36.10, 140.09),
		quake(t, "16-09-2015 22:54", "Chile", DepthLow, 22.4, 8.3, -31.57, -71.67),
		quake(t, "28-03-2005 16:09", "Indonesia", DepthMid, 100.0, 7.0, 2.09, 97.11),
		quake(t, "13-02-2020 10:33", "Japan", DepthMid, 150.0, 7.5, 45.62, 148.96),
		quake(t, "06-02-2023 01:17", "Turkey", DepthLow, 10.0, 7.8, 37.23, 37.01),
		quake(t, "11-03-2011 05:46", "Japan", DepthLow, 29.0, 9.1, 38.30, 142.37),
		quake(t, "26-01-2001 03:16", "India", DepthLow, 16.0, 7.7, 23.42, 70.23),
		quake(t, "06-09-2018 15:49", "", DepthMid, 670.8, 6.9, -18.47, 179.35),
		quake(t, "26-05-2019 07:41", "Peru", DepthMid, 110.0, 8.0, -5.81, -75.27),
		quake(t, "16-04-2016 23:58", "Ecuador", DepthLow, 20.6, 7.8, 0.38, -79.92),
	})
}

var scenarioYears = YearRange{Min: 2010, Max: 2015}

func utc(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}
