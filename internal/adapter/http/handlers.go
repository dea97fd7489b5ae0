package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/couchcryptid/quake-dashboard/internal/dashboard"
	"github.com/couchcryptid/quake-dashboard/internal/domain"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type handlers struct {
	svc *dashboard.Service
}

// chartParams are the control values carried by a chart request.
type chartParams struct {
	country   string
	years     domain.YearRange
	labels    []domain.DepthLabel
	magnitude float64
	order     domain.SliceOrder
}

func (h *handlers) controls(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Controls()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *handlers) mapCharts(w http.ResponseWriter, r *http.Request) {
	p, err := parseChartParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	figs, err := h.svc.Map(p.country, p.years)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, figs)
}

func (h *handlers) depthBar(w http.ResponseWriter, r *http.Request) {
	p, err := parseChartParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fig, err := h.svc.DepthBar(p.country, p.years, p.labels)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (h *handlers) depthScatter(w http.ResponseWriter, r *http.Request) {
	p, err := parseChartParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fig, err := h.svc.DepthScatter(p.country, p.years, p.labels)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

func (h *handlers) topCountries(w http.ResponseWriter, r *http.Request) {
	p, err := parseChartParams(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	fig, err := h.svc.TopCountries(p.years, p.magnitude, p.order)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fig)
}

// errTagBadRequest marks request parameter errors.
var errTagBadRequest = goerr.NewTag("bad_request")

// parseChartParams reads the control values from a query string. Absent
// parameters take the control defaults. Ranges are not checked for order.
func parseChartParams(q url.Values) (chartParams, error) {
	p := chartParams{
		country:   domain.AllCountries,
		years:     domain.FullYears,
		labels:    domain.DepthLabels,
		magnitude: dashboard.DefaultMagnitude,
	}

	if v := q.Get("country"); v != "" {
		p.country = v
	}

	var err error
	if p.years.Min, err = intParam(q, "from", p.years.Min); err != nil {
		return chartParams{}, err
	}
	if p.years.Max, err = intParam(q, "to", p.years.Max); err != nil {
		return chartParams{}, err
	}

	if v := q.Get("magnitude"); v != "" {
		p.magnitude, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return chartParams{}, goerr.New("invalid number",
				goerr.T(errTagBadRequest), goerr.V("param", "magnitude"), goerr.V("value", v))
		}
	}

	if values, ok := q["depth"]; ok {
		p.labels = make([]domain.DepthLabel, 0, len(values))
		for _, v := range values {
			if v == "" {
				continue
			}
			label, ok := domain.ParseDepthLabel(v)
			if !ok {
				return chartParams{}, goerr.New("invalid depth label",
					goerr.T(errTagBadRequest), goerr.V("param", "depth"), goerr.V("value", v))
			}
			p.labels = append(p.labels, label)
		}
	}

	if v := q.Get("order"); v != "" {
		order, ok := domain.ParseSliceOrder(v)
		if !ok {
			return chartParams{}, goerr.New("invalid order",
				goerr.T(errTagBadRequest), goerr.V("param", "order"), goerr.V("value", v))
		}
		p.order = order
	}
	return p, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, goerr.New("invalid number",
			goerr.T(errTagBadRequest), goerr.V("param", name), goerr.V("value", v))
	}
	return n, nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case goerr.HasTag(err, errTagBadRequest):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  err.Error(),
			"fields": goerr.Values(err),
		})
	case errors.Is(err, dashboard.ErrNotReady):
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
	default:
		ctxlog.From(r.Context()).Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
