package model

// PieSlice is one labeled wedge of a pie chart
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// PieChartSpec describes a pie chart independently of how it is drawn
type PieChartSpec struct {
	Title  string     `json:"title"`
	Slices []PieSlice `json:"slices"`
}

// Total returns the sum of all slice values
func (p PieChartSpec) Total() float64 {
	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// ScatterPoint is one plotted launch
type ScatterPoint struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Category string  `json:"category"`
	Site     string  `json:"site"`
}

// ScatterChartSpec describes a payload vs outcome scatter chart
type ScatterChartSpec struct {
	Title      string         `json:"title"`
	XLabel     string         `json:"x_label"`
	YLabel     string         `json:"y_label"`
	Categories []string       `json:"categories"`
	Points     []ScatterPoint `json:"points"`
}

// PointsByCategory groups points by color category. Each group keeps the
// order of Points.
func (s ScatterChartSpec) PointsByCategory() map[string][]ScatterPoint {
	out := make(map[string][]ScatterPoint, len(s.Categories))
	for _, p := range s.Points {
		out[p.Category] = append(out[p.Category], p)
	}
	return out
}
