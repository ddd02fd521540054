package handler

import (
	"net/http"
	"strconv"

	"spacex-dashboard/internal/aggregate"
)

// DatasetSummary describes the loaded launch table
type DatasetSummary struct {
	LoadID            string                  `json:"load_id,omitempty"`
	Source            string                  `json:"source"`
	Records           int                     `json:"records"`
	MinPayload        float64                 `json:"min_payload"`
	MaxPayload        float64                 `json:"max_payload"`
	BoosterCategories []string                `json:"booster_categories"`
	Sites             []aggregate.SiteSummary `json:"sites"`
}

// GetDataset returns a summary of the loaded dataset
// @Summary Dataset summary
// @Description Record count, payload bounds, categories and per-site launch tallies
// @Tags dataset
// @Produce json
// @Success 200 {object} DatasetSummary
// @Failure 500 {string} string "Internal server error"
// @Router /api/v1/dataset [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	sites, err := aggregate.SummarizeSites(h.ds)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary := DatasetSummary{
		Source:            h.ds.Source(),
		Records:           h.ds.Len(),
		MinPayload:        h.ds.MinPayload(),
		MaxPayload:        h.ds.MaxPayload(),
		BoosterCategories: h.ds.BoosterCategories(),
		Sites:             sites,
	}
	if h.audit != nil {
		summary.LoadID = h.audit.LoadID()
	}
	writeJSON(w, http.StatusOK, summary)
}

// ListLoads returns the dataset load history
// @Summary List dataset loads
// @Description Every recorded dataset load, newest first
// @Tags audit
// @Produce json
// @Success 200 {object} map[string]interface{} "Loads"
// @Failure 503 {string} string "Audit store disabled"
// @Failure 500 {string} string "Internal server error"
// @Router /api/v1/loads [get]
func (h *Handler) ListLoads(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		http.Error(w, "Audit store disabled", http.StatusServiceUnavailable)
		return
	}
	loads, err := h.audit.ListLoads(r.Context())
	if err != nil {
		http.Error(w, "Failed to fetch loads", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loads": loads,
		"count": len(loads),
	})
}

// ListEvents returns recent callback events
// @Summary List callback events
// @Description Most recent chart callbacks with their inputs, item counts and durations
// @Tags audit
// @Produce json
// @Param limit query int false "Maximum number of events" default(100)
// @Success 200 {object} map[string]interface{} "Events"
// @Failure 503 {string} string "Audit store disabled"
// @Failure 500 {string} string "Internal server error"
// @Router /api/v1/events [get]
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		http.Error(w, "Audit store disabled", http.StatusServiceUnavailable)
		return
	}

	// Get limit from query parameter
	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	events, err := h.audit.ListCallbackEvents(r.Context(), limit)
	if err != nil {
		http.Error(w, "Failed to fetch events", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
		"limit":  limit,
	})
}

// Healthz reports that the dataset is loaded and the server is serving
// @Summary Health check
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{} "Status"
// @Router /healthz [get]
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"records": h.ds.Len(),
	})
}
