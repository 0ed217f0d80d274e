package graph

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when the request parses to an empty value sequence.
var ErrNoData = errors.New("no chart data to plot")

// PlotResult carries the rasterized chart as a PNG data URL plus the same
// stats block ProcessChartData computes.
type PlotResult struct {
	Image string `json:"image"`
	Stats Stats  `json:"stats"`
}

// 10x6 inches at 150 dpi, matching the original plot dimensions.
const (
	plotWidth  = 1500
	plotHeight = 900
)

var (
	tealColor = drawing.ColorFromHex("0d9488")
	// piePalette mirrors chartPalette in render colors.
	piePalette = []drawing.Color{
		drawing.ColorFromHex("0d9488"),
		drawing.ColorFromHex("14b8a6"),
		drawing.ColorFromHex("2dd4bf"),
		drawing.ColorFromHex("5eead4"),
		drawing.ColorFromHex("99f6e4"),
	}
)

// GeneratePlot parses the request with the same rules as ProcessChartData,
// except that label padding uses empty strings rather than the "Label"
// placeholder. It renders a bar, line, or pie chart and returns it as a
// base64 PNG data URL. Unrecognized chart types fall back to bar rendering.
func GeneratePlot(req Request) (*PlotResult, error) {
	labels := parseLabels(req.Labels)
	values := parseValues(req.Values)
	labels, values = padSequences(labels, values, "")

	if len(values) == 0 {
		return nil, ErrNoData
	}

	title := req.Title
	if title == "" {
		title = "Data Plot"
	}

	var buf bytes.Buffer
	var err error
	switch req.Type {
	case "line":
		err = renderLine(&buf, title, labels, values)
	case "pie":
		err = renderPie(&buf, title, labels, values)
	default:
		err = renderBar(&buf, title, labels, values)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s chart: %w", req.Type, err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return &PlotResult{
		Image: "data:image/png;base64," + encoded,
		Stats: computeStats(values),
	}, nil
}

func renderBar(buf *bytes.Buffer, title string, labels []string, values []float64) error {
	bars := make([]chart.Value, len(values))
	for i, v := range values {
		bars[i] = chart.Value{
			Value: v,
			Label: labels[i],
			Style: chart.Style{
				FillColor:   tealColor.WithAlpha(204),
				StrokeColor: tealColor,
				StrokeWidth: 1,
			},
		}
	}

	graph := chart.BarChart{
		Title:  title,
		Width:  plotWidth,
		Height: plotHeight,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, buf)
}

func renderLine(buf *bytes.Buffer, title string, labels []string, values []float64) error {
	// A single point has no x-range; duplicate it so the series renders as a
	// flat line.
	if len(values) == 1 {
		values = []float64{values[0], values[0]}
		labels = []string{labels[0], labels[0]}
	}

	xs := make([]float64, len(values))
	ticks := make([]chart.Tick, len(values))
	for i := range values {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: labels[i]}
	}

	graph := chart.Chart{
		Title:  title,
		Width:  plotWidth,
		Height: plotHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: axisMax(values)},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: values,
				Style: chart.Style{
					StrokeColor: tealColor,
					StrokeWidth: 2,
					FillColor:   tealColor.WithAlpha(25),
				},
			},
		},
	}
	return graph.Render(chart.PNG, buf)
}

func renderPie(buf *bytes.Buffer, title string, labels []string, values []float64) error {
	// The renderer requires at least one non-zero slice. Values can collapse
	// to all zeros through the discard-and-pad parsing rules, so weight every
	// slice equally in that case.
	total := 0.0
	for _, v := range values {
		total += v
	}

	slices := make([]chart.Value, len(values))
	for i, v := range values {
		if total == 0 {
			v = 1
		}
		slices[i] = chart.Value{
			Value: v,
			Label: labels[i],
			Style: chart.Style{FillColor: piePalette[i%len(piePalette)]},
		}
	}

	graph := chart.PieChart{
		Title:  title,
		Width:  plotWidth,
		Height: plotHeight,
		Values: slices,
	}
	return graph.Render(chart.PNG, buf)
}

// axisMax keeps the y-range non-degenerate when every value is zero.
func axisMax(values []float64) float64 {
	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return 1
	}
	return max * 1.05
}
