package report

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const ChartTitle = "Individual Rejection Reasons"

var barColor = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}

// EncodeChart draws one bar per distinct reason with its count above it,
// rendered as PNG.
func EncodeChart(r *Report) ([]byte, error) {
	p := plot.New()
	p.Title.Text = ChartTitle
	p.Y.Label.Text = "Count"
	p.Y.Min = 0

	if len(r.Reasons) > 0 {
		values := make(plotter.Values, len(r.Reasons))
		names := make([]string, len(r.Reasons))
		xys := make(plotter.XYs, len(r.Reasons))
		labels := make([]string, len(r.Reasons))
		for i, rc := range r.Reasons {
			values[i] = float64(rc.Count)
			names[i] = rc.Reason
			xys[i] = plotter.XY{X: float64(i), Y: float64(rc.Count)}
			labels[i] = strconv.Itoa(rc.Count)
		}

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return nil, fmt.Errorf("bar chart: %w", err)
		}
		bars.LineStyle.Width = 0
		bars.Color = barColor
		p.Add(bars)

		lbl, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("bar labels: %w", err)
		}
		p.Add(lbl)

		p.NominalX(names...)
		p.X.Tick.Label.Rotation = math.Pi / 4
		// Headroom so the value labels above the tallest bar stay visible.
		p.Y.Max = values[maxIndex(values)] * 1.15
	}

	wt, err := p.WriterTo(12*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	return buf.Bytes(), nil
}

func maxIndex(v plotter.Values) int {
	best := 0
	for i := range v {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
