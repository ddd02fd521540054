package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"spacex-dashboard/internal/model"
)

// Chart titles and labels shown above the dashboard graphs
const (
	PieTitleAllSites     = "Total Success Launches By Site"
	pieTitleSiteFormat   = "Total Success Launches for site %s"
	ScatterTitleAllSites = "Correlation between Payload and Success for all Sites"
	scatterTitleFormat   = "Correlation between Payload and Success for site %s"

	LabelSuccess = "Success"
	LabelFailure = "Failure"

	ScatterXLabel = "Payload Mass (kg)"
	ScatterYLabel = "class"
)

// ErrNoDataset is returned when an aggregation is asked to run without data
var ErrNoDataset = errors.New("no dataset loaded")

// ComputePieChart builds the success pie for the selected site.
//
// For ALL it returns one slice per site whose value is the number of successful
// launches there (sites with no success keep a zero slice). For a single site it
// splits that site's launches into Success and Failure counts, omitting a class
// that never occurs. An unknown site yields a chart with no slices.
func ComputePieChart(ds *model.Dataset, site string) (model.PieChartSpec, error) {
	if ds == nil {
		return model.PieChartSpec{}, ErrNoDataset
	}

	if site == model.AllSites {
		return successBySite(ds), nil
	}
	return outcomesForSite(ds, site), nil
}

func successBySite(ds *model.Dataset) model.PieChartSpec {
	sites := ds.Sites()
	index := make(map[string]int, len(sites))
	slices := make([]model.PieSlice, len(sites))
	for i, s := range sites {
		index[s] = i
		slices[i] = model.PieSlice{Label: s}
	}

	ds.Each(func(rec model.LaunchRecord) {
		if rec.Succeeded() {
			slices[index[rec.LaunchSite]].Value++
		}
	})

	return model.PieChartSpec{
		Title:  PieTitleAllSites,
		Slices: slices,
	}
}

func outcomesForSite(ds *model.Dataset, site string) model.PieChartSpec {
	var success, failure int
	ds.Each(func(rec model.LaunchRecord) {
		if rec.LaunchSite != site {
			return
		}
		if rec.Succeeded() {
			success++
		} else {
			failure++
		}
	})

	slices := make([]model.PieSlice, 0, 2)
	if success > 0 {
		slices = append(slices, model.PieSlice{Label: LabelSuccess, Value: float64(success)})
	}
	if failure > 0 {
		slices = append(slices, model.PieSlice{Label: LabelFailure, Value: float64(failure)})
	}
	// larger share first, Success wins ties
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})

	return model.PieChartSpec{
		Title:  fmt.Sprintf(pieTitleSiteFormat, site),
		Slices: slices,
	}
}

// ComputeScatterChart plots payload mass against outcome for every launch whose
// payload lies in payload (inclusive), restricted to site unless it is ALL.
// Points keep dataset order and are colored by booster version category.
func ComputeScatterChart(ds *model.Dataset, site string, payload model.PayloadRange) (model.ScatterChartSpec, error) {
	if ds == nil {
		return model.ScatterChartSpec{}, ErrNoDataset
	}

	spec := model.ScatterChartSpec{
		Title:      ScatterTitleAllSites,
		XLabel:     ScatterXLabel,
		YLabel:     ScatterYLabel,
		Categories: []string{},
		Points:     []model.ScatterPoint{},
	}
	allSites := site == model.AllSites
	if !allSites {
		spec.Title = fmt.Sprintf(scatterTitleFormat, site)
	}

	if payload.Empty() {
		return spec, nil
	}

	seen := make(map[string]bool)
	ds.Each(func(rec model.LaunchRecord) {
		if !payload.Contains(rec.PayloadMassKg) {
			return
		}
		if !allSites && rec.LaunchSite != site {
			return
		}
		spec.Points = append(spec.Points, model.ScatterPoint{
			X:        rec.PayloadMassKg,
			Y:        float64(rec.OutcomeClass),
			Category: rec.BoosterVersionCategory,
			Site:     rec.LaunchSite,
		})
		if !seen[rec.BoosterVersionCategory] {
			seen[rec.BoosterVersionCategory] = true
			spec.Categories = append(spec.Categories, rec.BoosterVersionCategory)
		}
	})

	return spec, nil
}

// SiteSummary is the per-site launch tally shown by the dataset endpoint
type SiteSummary struct {
	Site      string `json:"site"`
	Launches  int    `json:"launches"`
	Successes int    `json:"successes"`
	Failures  int    `json:"failures"`
}

// SummarizeSites tallies launches per site in order of first appearance.
func SummarizeSites(ds *model.Dataset) ([]SiteSummary, error) {
	if ds == nil {
		return nil, ErrNoDataset
	}

	sites := ds.Sites()
	index := make(map[string]int, len(sites))
	out := make([]SiteSummary, len(sites))
	for i, s := range sites {
		index[s] = i
		out[i].Site = s
	}
	ds.Each(func(rec model.LaunchRecord) {
		sum := &out[index[rec.LaunchSite]]
		sum.Launches++
		if rec.Succeeded() {
			sum.Successes++
		} else {
			sum.Failures++
		}
	})
	return out, nil
}
