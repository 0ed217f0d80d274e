// Package graph turns comma-separated label/value input into chart-ready
// structures and optionally rasterizes them to PNG.
package graph

import (
	"strconv"
	"strings"
)

// Request is the chart payload sent by the editor: labels and values as
// comma-separated strings plus a chart type and title.
type Request struct {
	Labels string `json:"labels"`
	Values string `json:"values"`
	Type   string `json:"type"`
	Title  string `json:"title"`
}

// Stats are descriptive statistics over the parsed values.
type Stats struct {
	Sum float64 `json:"sum"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
	Min float64 `json:"min"`
}

// Dataset is shaped for direct consumption by Chart.js. BackgroundColor is a
// single color string for bar/line charts and a color slice for pie charts.
type Dataset struct {
	Label           string      `json:"label"`
	Data            []float64   `json:"data"`
	BackgroundColor interface{} `json:"backgroundColor"`
	BorderColor     string      `json:"borderColor"`
	BorderWidth     int         `json:"borderWidth"`
}

// ChartData is the processed, render-ready chart structure.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
	Stats    Stats     `json:"stats"`
}

const (
	primaryColorHex = "#0d9488"
	labelPad        = "Label"
)

// chartPalette is the cyclic pie palette, as rgba strings for Chart.js.
var chartPalette = []string{
	"rgba(13, 148, 136, 0.7)",
	"rgba(110, 231, 183, 0.7)",
	"rgba(51, 65, 85, 0.7)",
	"rgba(204, 251, 241, 0.7)",
	"rgba(15, 118, 110, 0.7)",
}

// ProcessChartData parses the raw label/value strings and returns a Chart.js
// payload plus stats. Labels are padded with the literal "Label" placeholder
// and values with 0 until both sequences match the longer one's length.
func ProcessChartData(req Request) ChartData {
	labels := parseLabels(req.Labels)
	values := parseValues(req.Values)
	labels, values = padSequences(labels, values, labelPad)

	title := req.Title
	if title == "" {
		title = "Dataset"
	}

	return ChartData{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           title,
			Data:            values,
			BackgroundColor: backgroundColors(req.Type, len(values)),
			BorderColor:     primaryColorHex,
			BorderWidth:     1,
		}},
		Stats: computeStats(values),
	}
}

// parseLabels splits a comma-separated string, trimming whitespace and
// dropping empty tokens.
func parseLabels(raw string) []string {
	labels := []string{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			labels = append(labels, token)
		}
	}
	return labels
}

// parseValues parses comma-separated numbers. A single non-numeric token
// discards the entire sequence, not just the bad token.
func parseValues(raw string) []float64 {
	values := []float64{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return []float64{}
		}
		values = append(values, v)
	}
	return values
}

// padSequences extends the shorter of the two sequences to the longer one's
// length, padding labels with labelFill and values with 0.
func padSequences(labels []string, values []float64, labelFill string) ([]string, []float64) {
	maxLen := len(labels)
	if len(values) > maxLen {
		maxLen = len(values)
	}
	for len(labels) < maxLen {
		labels = append(labels, labelFill)
	}
	for len(values) < maxLen {
		values = append(values, 0)
	}
	return labels, values
}

func computeStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	stats := Stats{Max: values[0], Min: values[0]}
	for _, v := range values {
		stats.Sum += v
		if v > stats.Max {
			stats.Max = v
		}
		if v < stats.Min {
			stats.Min = v
		}
	}
	stats.Avg = stats.Sum / float64(len(values))
	return stats
}

// backgroundColors returns a cyclic palette slice for pie charts and a single
// color for everything else.
func backgroundColors(chartType string, count int) interface{} {
	if chartType == "pie" {
		colors := make([]string, count)
		for i := range colors {
			colors[i] = chartPalette[i%len(chartPalette)]
		}
		return colors
	}
	return chartPalette[0]
}
