package layout

import (
	"spacex-dashboard/internal/binding"
	"spacex-dashboard/internal/model"
	"spacex-dashboard/pkg/utils"
)

// Slider bounds are fixed; the initial value comes from the dataset.
const (
	SliderMin  = 0
	SliderMax  = 10000
	SliderStep = 1000

	Title          = "SpaceX Launch Records Dashboard"
	AllSitesLabel  = "All Sites"
	Placeholder    = "Select a Launch Site here"
	PayloadCaption = "Payload range (Kg):"
)

var sliderMarks = []float64{0, 100, 1000, 2000, 3000, 4000, 5000, 6000, 7000, 8000, 9000, 10000}

// Option is one dropdown entry
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Dropdown is the launch site selector
type Dropdown struct {
	ID          string   `json:"id"`
	Options     []Option `json:"options"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder"`
	Searchable  bool     `json:"searchable"`
}

// Mark is a labeled slider tick
type Mark struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// RangeSlider is the payload range control
type RangeSlider struct {
	ID      string     `json:"id"`
	Caption string     `json:"caption"`
	Min     float64    `json:"min"`
	Max     float64    `json:"max"`
	Step    float64    `json:"step"`
	Marks   []Mark     `json:"marks"`
	Value   [2]float64 `json:"value"`
}

// Graph is a placeholder for a chart output
type Graph struct {
	ID string `json:"id"`
}

// Layout declares every widget on the dashboard page
type Layout struct {
	Title        string      `json:"title"`
	SiteDropdown Dropdown    `json:"site_dropdown"`
	PieChart     Graph       `json:"pie_chart"`
	Slider       RangeSlider `json:"payload_slider"`
	ScatterChart Graph       `json:"scatter_chart"`
}

// Build declares the dashboard for ds: an ALL option ahead of every site, and
// a slider starting at the dataset's payload bounds.
func Build(ds *model.Dataset) Layout {
	options := []Option{{Label: AllSitesLabel, Value: model.AllSites}}
	for _, site := range ds.Sites() {
		options = append(options, Option{Label: site, Value: site})
	}

	marks := make([]Mark, len(sliderMarks))
	for i, v := range sliderMarks {
		marks[i] = Mark{Value: v, Label: utils.FormatKg(v)}
	}

	return Layout{
		Title: Title,
		SiteDropdown: Dropdown{
			ID:          binding.InputSite,
			Options:     options,
			Value:       model.AllSites,
			Placeholder: Placeholder,
			Searchable:  true,
		},
		PieChart: Graph{ID: binding.OutputPie},
		Slider: RangeSlider{
			ID:      binding.InputPayload,
			Caption: PayloadCaption,
			Min:     SliderMin,
			Max:     SliderMax,
			Step:    SliderStep,
			Marks:   marks,
			Value:   [2]float64{ds.MinPayload(), ds.MaxPayload()},
		},
		ScatterChart: Graph{ID: binding.OutputScatter},
	}
}

// InitialSelection is the control state the page starts in
func (l Layout) InitialSelection() model.SelectionState {
	return model.SelectionState{
		Site:    l.SiteDropdown.Value,
		Payload: model.PayloadRange{Low: l.Slider.Value[0], High: l.Slider.Value[1]},
	}
}
