package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"spacex-dashboard/internal/api/handler"
	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
	"spacex-dashboard/pkg/router"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	ds, err := model.NewDataset("launches.csv", []model.LaunchRecord{
		{LaunchSite: "A", PayloadMassKg: 500, BoosterVersionCategory: "FT", OutcomeClass: 1},
		{LaunchSite: "B", PayloadMassKg: 3000, BoosterVersionCategory: "B5", OutcomeClass: 0},
	})
	require.NoError(t, err)

	renderer := render.New(400, 300)
	table, err := binding.NewDashboardTable(ds, renderer, zap.NewNop())
	require.NoError(t, err)

	r := router.New(zap.NewNop())
	RegisterRoutes(r, handler.New(ds, table, renderer, nil, zap.NewNop()))
	return r.Handler()
}

func TestRegisterRoutes(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		method, path, body string
		status             int
		contentType        string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "text/html"},
		{http.MethodGet, "/healthz", "", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/layout", "", http.StatusOK, "application/json"},
		{http.MethodPost, "/api/v1/callbacks", `{"changed":"site-dropdown","state":{"site":"B","payload":[0,10000]}}`, http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/dataset", "", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/loads", "", http.StatusServiceUnavailable, "text/plain"},
		{http.MethodGet, "/api/v1/events", "", http.StatusServiceUnavailable, "text/plain"},
		{http.MethodGet, "/api/v1/charts/pie?site=A", "", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/charts/pie.svg", "", http.StatusOK, "image/svg+xml"},
		{http.MethodGet, "/api/v1/charts/pie.png", "", http.StatusOK, "image/png"},
		{http.MethodGet, "/api/v1/charts/scatter?low=0&high=1000", "", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/charts/scatter.svg", "", http.StatusOK, "image/svg+xml"},
		{http.MethodGet, "/api/v1/charts/scatter.png", "", http.StatusOK, "image/png"},
		{http.MethodGet, "/swagger/doc.json", "", http.StatusOK, "application/json"},
		{http.MethodGet, "/api/v1/callbacks", "", http.StatusMethodNotAllowed, "text/plain"},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), tt.contentType),
				"content type %q", rec.Header().Get("Content-Type"))
		})
	}
}

func TestSwaggerDocDescribesCallbacks(t *testing.T) {
	rec := httptest.NewRecorder()
	newServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SpaceX Launch Records Dashboard API")
	assert.Contains(t, rec.Body.String(), "/api/v1/callbacks")
}
