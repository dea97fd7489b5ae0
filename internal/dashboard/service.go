// Package dashboard answers the chart queries against the loaded catalogue.
package dashboard

import (
	"errors"
	"time"

	"github.com/couchcryptid/quake-dashboard/internal/chart"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/couchcryptid/quake-dashboard/internal/observability"
)

// ErrNotReady is returned while the dataset is still loading.
var ErrNotReady = errors.New("dataset not loaded")

// Control defaults.
const (
	DefaultMagnitude = 7.0
	MagnitudeStep    = 0.5
)

// Query names used as metric labels.
const (
	queryMap          = "map"
	queryDepthBar     = "depth_bar"
	queryDepthScatter = "depth_scatter"
	queryTopCountries = "top_countries"
)

// TableProvider exposes the currently published table, nil until loaded.
type TableProvider interface {
	Table() *domain.Table
}

// Service runs the four dashboard queries and renders their figures.
type Service struct {
	tables   TableProvider
	metrics  *observability.Metrics
	pieOrder domain.SliceOrder
}

// NewService creates a Service. pieOrder is used when a request does not pick one.
func NewService(tables TableProvider, metrics *observability.Metrics, pieOrder domain.SliceOrder) *Service {
	if pieOrder == "" {
		pieOrder = domain.OrderGrouping
	}
	return &Service{tables: tables, metrics: metrics, pieOrder: pieOrder}
}

// YearSlider describes the year range control.
type YearSlider struct {
	Min     int              `json:"min"`
	Max     int              `json:"max"`
	Default domain.YearRange `json:"default"`
}

// MagnitudeSlider describes the magnitude threshold control.
type MagnitudeSlider struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Step    float64 `json:"step"`
	Default float64 `json:"default"`
}

// DepthChecklist describes the depth label checkboxes.
type DepthChecklist struct {
	Options []domain.DepthLabel `json:"options"`
	Default []domain.DepthLabel `json:"default"`
}

// Controls lists the options and defaults of every dashboard control.
type Controls struct {
	Countries      []string          `json:"countries"`
	DefaultCountry string            `json:"default_country"`
	Years          YearSlider        `json:"years"`
	Magnitude      MagnitudeSlider   `json:"magnitude"`
	Depth          DepthChecklist    `json:"depth"`
	PieOrder       domain.SliceOrder `json:"pie_order"`
	LoadedAt       time.Time         `json:"loaded_at"`
}

// Controls derives the control options from the loaded table.
func (s *Service) Controls() (Controls, error) {
	t := s.tables.Table()
	if t == nil {
		return Controls{}, ErrNotReady
	}
	lo, hi := t.MagnitudeRange()
	return Controls{
		Countries:      append([]string{domain.AllCountries}, t.Countries()...),
		DefaultCountry: domain.AllCountries,
		Years: YearSlider{
			Min:     domain.FirstYear,
			Max:     domain.LastYear,
			Default: domain.FullYears,
		},
		Magnitude: MagnitudeSlider{Min: lo, Max: hi, Step: MagnitudeStep, Default: DefaultMagnitude},
		Depth: DepthChecklist{
			Options: domain.DepthLabels,
			Default: domain.DepthLabels,
		},
		PieOrder: s.pieOrder,
		LoadedAt: t.LoadedAt(),
	}, nil
}

// Map returns the bubble map and trend line for country within years.
func (s *Service) Map(country string, years domain.YearRange) (chart.MapFigures, error) {
	t := s.tables.Table()
	if t == nil {
		return chart.MapFigures{}, ErrNotReady
	}
	start := time.Now()
	res := domain.MapTrend(t, country, years)
	s.observe(queryMap, start, len(res.Points))
	return chart.Map(res), nil
}

// DepthBar returns the depth-stacked yearly counts.
func (s *Service) DepthBar(country string, years domain.YearRange, labels []domain.DepthLabel) (chart.Figure, error) {
	t := s.tables.Table()
	if t == nil {
		return chart.Figure{}, ErrNotReady
	}
	start := time.Now()
	res := domain.DepthCounts(t, country, years, labels)
	s.observe(queryDepthBar, start, res.Total())
	return chart.DepthBar(res), nil
}

// DepthScatter returns the depth against magnitude scatter.
func (s *Service) DepthScatter(country string, years domain.YearRange, labels []domain.DepthLabel) (chart.Figure, error) {
	t := s.tables.Table()
	if t == nil {
		return chart.Figure{}, ErrNotReady
	}
	start := time.Now()
	res := domain.DepthScatter(t, country, labels, years)
	s.observe(queryDepthScatter, start, res.Len())
	return chart.DepthScatter(res), nil
}

// TopCountries returns the top-countries pie. An empty order uses the
// service default.
func (s *Service) TopCountries(years domain.YearRange, minMagnitude float64, order domain.SliceOrder) (chart.Figure, error) {
	t := s.tables.Table()
	if t == nil {
		return chart.Figure{}, ErrNotReady
	}
	if order == "" {
		order = s.pieOrder
	}
	start := time.Now()
	res := domain.TopCountries(t, years, minMagnitude, order)
	s.observe(queryTopCountries, start, len(res.Slices))
	return chart.TopCountriesPie(res), nil
}

func (s *Service) observe(query string, start time.Time, size int) {
	s.metrics.Queries.WithLabelValues(query).Inc()
	s.metrics.QueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	s.metrics.QueryResultSize.WithLabelValues(query).Observe(float64(size))
}
