package render

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/JPRMSP/Real-Time-Cognitive-Load-Visualizer-Simulated-NIRS/internal/signal"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 400
)

// go-chart necesita al menos dos valores en X
var ErrTooFewSamples = errors.New("render: at least two samples are required")

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
}

// Chart dibuja oxy y deoxy contra el tiempo en un PNG de dos líneas.
func Chart(w io.Writer, res *signal.Result) error {
	if res == nil || res.Len() < 2 {
		return ErrTooFewSamples
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("NIRS-like Signal: %s", res.Task),
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		XAxis: chart.XAxis{Name: "Time (s)"},
		YAxis: chart.YAxis{Name: "Concentration Change (a.u.)"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Oxy-Hb (Oxygenated Hemoglobin)",
				XValues: res.Time,
				YValues: res.Oxy,
				Style:   lineStyle(drawing.ColorRed),
			},
			chart.ContinuousSeries{
				Name:    "Deoxy-Hb (Deoxygenated Hemoglobin)",
				XValues: res.Time,
				YValues: res.Deoxy,
				Style:   lineStyle(drawing.ColorBlue),
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
