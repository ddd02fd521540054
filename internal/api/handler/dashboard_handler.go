package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"spacex-dashboard/internal/aggregate"
	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/layout"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
	"spacex-dashboard/internal/store"
)

// CallbackPath is where the dashboard page posts control changes
const CallbackPath = "/api/v1/callbacks"

// AuditLog is the read side of the audit store
type AuditLog interface {
	LoadID() string
	ListLoads(ctx context.Context) ([]store.Load, error)
	ListCallbackEvents(ctx context.Context, limit int) ([]store.CallbackEvent, error)
}

// Handler serves the dashboard page and its chart API
type Handler struct {
	ds       *model.Dataset
	table    *binding.Table
	layout   layout.Layout
	renderer *render.Renderer
	audit    AuditLog
	log      *zap.Logger
}

// New creates a handler. audit may be nil when the store is disabled.
func New(ds *model.Dataset, table *binding.Table, renderer *render.Renderer, audit AuditLog, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		ds:       ds,
		table:    table,
		layout:   layout.Build(ds),
		renderer: renderer,
		audit:    audit,
		log:      log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Dashboard renders the dashboard page
// @Summary Dashboard page
// @Description HTML page with the site selector, payload slider and both charts in their initial state
// @Tags dashboard
// @Produce html
// @Success 200 {string} string "Dashboard HTML"
// @Failure 500 {string} string "Internal server error"
// @Router / [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session := h.table.NewSession(h.layout.InitialSelection())
	updates, err := session.Initial(r.Context())
	if err != nil {
		h.log.Error("initial figures failed", zap.Error(err))
		http.Error(w, "Failed to compute charts", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := layout.RenderPage(w, h.layout, updates, CallbackPath); err != nil {
		h.log.Error("page render failed", zap.Error(err))
	}
}

// GetLayout returns the declarative page layout
// @Summary Get layout
// @Description Widgets of the dashboard with their options, bounds and initial values
// @Tags dashboard
// @Produce json
// @Success 200 {object} layout.Layout
// @Router /api/v1/layout [get]
func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.layout)
}

// CallbackState is the full control state sent with every callback. A
// missing payload means the dataset's own bounds.
type CallbackState struct {
	Site    string      `json:"site"`
	Payload *[2]float64 `json:"payload,omitempty"`
}

// CallbackRequest reports which control changed. An empty Changed asks for
// every output.
type CallbackRequest struct {
	Changed string        `json:"changed"`
	State   CallbackState `json:"state"`
}

// CallbackResponse carries one update per recomputed output
type CallbackResponse struct {
	Updates []binding.Update `json:"updates"`
}

// PostCallback recomputes the charts that depend on the changed control
// @Summary Run callbacks
// @Description Apply a control change and return the recomputed chart figures
// @Tags dashboard
// @Accept json
// @Produce json
// @Param callback body CallbackRequest true "Changed control and current control state"
// @Success 200 {object} CallbackResponse
// @Failure 400 {string} string "Invalid request payload"
// @Failure 500 {string} string "Computation error"
// @Router /api/v1/callbacks [post]
func (h *Handler) PostCallback(w http.ResponseWriter, r *http.Request) {
	var req CallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.State.Site == "" {
		req.State.Site = model.AllSites
	}

	state := model.SelectionState{
		Site:    req.State.Site,
		Payload: h.ds.PayloadBounds(),
	}
	if p := req.State.Payload; p != nil {
		state.Payload = model.PayloadRange{Low: p[0], High: p[1]}
	}
	session := h.table.NewSession(state)

	var (
		updates []binding.Update
		err     error
	)
	if req.Changed == "" {
		updates, err = session.Initial(r.Context())
	} else {
		updates, err = session.Apply(r.Context(), binding.Change{
			Input:   req.Changed,
			Site:    state.Site,
			Payload: state.Payload,
		})
	}

	var compErr *binding.ComputationError
	switch {
	case errors.Is(err, binding.ErrUnknownInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.As(err, &compErr):
		http.Error(w, compErr.Error(), http.StatusInternalServerError)
		return
	case err != nil:
		http.Error(w, "Failed to run callbacks", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, CallbackResponse{Updates: updates})
}

func parseSite(q url.Values) string {
	if site := q.Get("site"); site != "" {
		return site
	}
	return model.AllSites
}

func (h *Handler) parseRange(q url.Values) (model.PayloadRange, error) {
	rng := h.ds.PayloadBounds()
	for _, p := range []struct {
		key string
		dst *float64
	}{{"low", &rng.Low}, {"high", &rng.High}} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return rng, fmt.Errorf("invalid %s: %q", p.key, raw)
		}
		*p.dst = v
	}
	return rng, nil
}

// GetPieChart returns the success pie chart spec
// @Summary Pie chart spec
// @Description Successful launches per site for ALL, or success vs failure counts for one site
// @Tags charts
// @Produce json
// @Param site query string false "Launch site or ALL" default(ALL)
// @Success 200 {object} model.PieChartSpec
// @Failure 500 {string} string "Computation error"
// @Router /api/v1/charts/pie [get]
func (h *Handler) GetPieChart(w http.ResponseWriter, r *http.Request) {
	spec, err := aggregate.ComputePieChart(h.ds, parseSite(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

// GetScatterChart returns the payload/outcome scatter chart spec
// @Summary Scatter chart spec
// @Description Launches whose payload is within [low, high], optionally restricted to one site
// @Tags charts
// @Produce json
// @Param site query string false "Launch site or ALL" default(ALL)
// @Param low query number false "Lowest payload mass in kg (default dataset minimum)"
// @Param high query number false "Highest payload mass in kg (default dataset maximum)"
// @Success 200 {object} model.ScatterChartSpec
// @Failure 400 {string} string "Invalid payload range"
// @Failure 500 {string} string "Computation error"
// @Router /api/v1/charts/scatter [get]
func (h *Handler) GetScatterChart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := h.parseRange(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec, err := aggregate.ComputeScatterChart(h.ds, parseSite(q), rng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func imageFormat(path string) (render.Format, error) {
	i := strings.LastIndex(path, ".")
	if i < 0 {
		return render.SVG, nil
	}
	return render.ParseFormat(path[i+1:])
}

func writeImage(w http.ResponseWriter, f render.Format, img []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	w.Write(img)
}

// GetPieImage renders the pie chart
// @Summary Pie chart image
// @Description Rendered pie chart as SVG or PNG depending on the extension
// @Tags charts
// @Produce image/svg+xml
// @Produce image/png
// @Param site query string false "Launch site or ALL" default(ALL)
// @Success 200 {file} file "Chart image"
// @Failure 500 {string} string "Render error"
// @Router /api/v1/charts/pie.svg [get]
// @Router /api/v1/charts/pie.png [get]
func (h *Handler) GetPieImage(w http.ResponseWriter, r *http.Request) {
	f, err := imageFormat(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec, err := aggregate.ComputePieChart(h.ds, parseSite(r.URL.Query()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	img, err := h.renderer.Pie(spec, f)
	if err != nil {
		h.log.Error("pie render failed", zap.Error(err))
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	writeImage(w, f, img)
}

// GetScatterImage renders the scatter chart
// @Summary Scatter chart image
// @Description Rendered scatter chart as SVG or PNG depending on the extension
// @Tags charts
// @Produce image/svg+xml
// @Produce image/png
// @Param site query string false "Launch site or ALL" default(ALL)
// @Param low query number false "Lowest payload mass in kg"
// @Param high query number false "Highest payload mass in kg"
// @Success 200 {file} file "Chart image"
// @Failure 400 {string} string "Invalid payload range"
// @Failure 500 {string} string "Render error"
// @Router /api/v1/charts/scatter.svg [get]
// @Router /api/v1/charts/scatter.png [get]
func (h *Handler) GetScatterImage(w http.ResponseWriter, r *http.Request) {
	f, err := imageFormat(r.URL.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	q := r.URL.Query()
	rng, err := h.parseRange(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec, err := aggregate.ComputeScatterChart(h.ds, parseSite(q), rng)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	img, err := h.renderer.Scatter(spec, f)
	if err != nil {
		h.log.Error("scatter render failed", zap.Error(err))
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}
	writeImage(w, f, img)
}
