package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "spacex-dashboard/docs"
	"spacex-dashboard/internal/api/handler"
	"spacex-dashboard/pkg/router"
)

func RegisterRoutes(r *router.Router, h *handler.Handler) {
	r.GET("/", h.Dashboard)
	r.GET("/healthz", h.Healthz)
	r.GET("/api/v1/layout", h.GetLayout)
	r.POST(handler.CallbackPath, h.PostCallback)
	r.GET("/api/v1/dataset", h.GetDataset)
	r.GET("/api/v1/loads", h.ListLoads)
	r.GET("/api/v1/events", h.ListEvents)
	r.GET("/api/v1/charts/pie", h.GetPieChart)
	r.GET("/api/v1/charts/pie.svg", h.GetPieImage)
	r.GET("/api/v1/charts/pie.png", h.GetPieImage)
	r.GET("/api/v1/charts/scatter", h.GetScatterChart)
	r.GET("/api/v1/charts/scatter.svg", h.GetScatterImage)
	r.GET("/api/v1/charts/scatter.png", h.GetScatterImage)
	r.Handle(http.MethodGet, "/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}
