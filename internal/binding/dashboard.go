package binding

import (
	"context"

	"go.uber.org/zap"

	"spacex-dashboard/internal/aggregate"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/internal/render"
)

// NewDashboardTable wires the two launch charts to the site selector and the
// payload slider. When renderer is nil, updates carry specs without SVG.
func NewDashboardTable(ds *model.Dataset, renderer *render.Renderer, log *zap.Logger) (*Table, error) {
	t := NewTable(log, InputSite, InputPayload)

	pie := func(_ context.Context, state model.SelectionState) (Update, error) {
		spec, err := aggregate.ComputePieChart(ds, state.Site)
		if err != nil {
			return Update{}, err
		}
		upd := Update{Title: spec.Title, Pie: &spec, Items: len(spec.Slices)}
		if renderer != nil {
			img, err := renderer.Pie(spec, render.SVG)
			if err != nil {
				return Update{}, err
			}
			upd.SVG = string(img)
		}
		return upd, nil
	}

	scatter := func(_ context.Context, state model.SelectionState) (Update, error) {
		spec, err := aggregate.ComputeScatterChart(ds, state.Site, state.Payload)
		if err != nil {
			return Update{}, err
		}
		upd := Update{Title: spec.Title, Scatter: &spec, Items: len(spec.Points)}
		if renderer != nil {
			img, err := renderer.Scatter(spec, render.SVG)
			if err != nil {
				return Update{}, err
			}
			upd.SVG = string(img)
		}
		return upd, nil
	}

	if err := t.Register(OutputPie, []string{InputSite}, pie); err != nil {
		return nil, err
	}
	if err := t.Register(OutputScatter, []string{InputSite, InputPayload}, scatter); err != nil {
		return nil, err
	}
	return t, nil
}
