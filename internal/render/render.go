package render

import (
	"bytes"
	"fmt"
	"html"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"spacex-dashboard/internal/model"
)

// Format is an output image encoding
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat maps a file extension or query value to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "", "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// ContentType returns the MIME type served for f
func (f Format) ContentType() string {
	if f == PNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == PNG {
		return chart.PNG
	}
	return chart.SVG
}

// Renderer draws chart specs with go-chart at a fixed size
type Renderer struct {
	Width  int
	Height int
}

// New returns a renderer for width x height images
func New(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Pie draws a pie chart. Zero-valued slices are skipped, and a spec with
// nothing left to draw becomes a titled placeholder.
func (r *Renderer) Pie(spec model.PieChartSpec, f Format) ([]byte, error) {
	values := make([]chart.Value, 0, len(spec.Slices))
	for _, s := range spec.Slices {
		if s.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: plainText.Replace(fmt.Sprintf("%s (%g)", s.Label, s.Value)),
			Value: s.Value,
		})
	}
	if len(values) == 0 {
		return r.placeholder(spec.Title, "No launches match the selection", f)
	}

	pie := chart.PieChart{
		Title:  plainText.Replace(spec.Title),
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(f.provider(), &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// markup characters in titles and labels are swapped for look-alikes so a
// site name can never open an element in the SVG output
var plainText = strings.NewReplacer("<", "‹", ">", "›", "&", "+", `"`, "'")

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// Scatter draws one dot series per booster category on a payload/outcome grid.
func (r *Renderer) Scatter(spec model.ScatterChartSpec, f Format) ([]byte, error) {
	if len(spec.Points) == 0 {
		return r.placeholder(spec.Title, "No launches in the selected payload range", f)
	}

	byCategory := spec.PointsByCategory()
	series := make([]chart.Series, 0, len(spec.Categories))
	minX, maxX := math.Inf(1), math.Inf(-1)
	for i, category := range spec.Categories {
		points := byCategory[category]
		xs := make([]float64, len(points))
		ys := make([]float64, len(points))
		for j, p := range points {
			xs[j], ys[j] = p.X, p.Y
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    plainText.Replace(category),
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	// a single distinct payload would give go-chart a zero-width range
	pad := (maxX - minX) * 0.05
	if pad == 0 {
		pad = 500
	}

	ch := chart.Chart{
		Title:      plainText.Replace(spec.Title),
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 64}},
		XAxis: chart.XAxis{
			Name:  spec.XLabel,
			Range: &chart.ContinuousRange{Min: math.Max(0, minX-pad), Max: maxX + pad},
		},
		YAxis: chart.YAxis{
			Name:  spec.YLabel,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(f.provider(), &buf); err != nil {
		return nil, fmt.Errorf("render scatter chart: %w", err)
	}
	return buf.Bytes(), nil
}

// placeholder produces an image for a chart with nothing to plot; go-chart
// refuses to render an empty pie or a chart without series.
func (r *Renderer) placeholder(title, message string, f Format) ([]byte, error) {
	if f == PNG {
		img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
		draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode placeholder: %w", err)
		}
		return buf.Bytes(), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`, r.Width, r.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	fmt.Fprintf(&b, `<text x="50%%" y="32" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`, html.EscapeString(title))
	fmt.Fprintf(&b, `<text x="50%%" y="50%%" text-anchor="middle" font-family="sans-serif" font-size="13" fill="#777777">%s</text>`, html.EscapeString(message))
	b.WriteString(`</svg>`)
	return []byte(b.String()), nil
}
