package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	rawColor      = color.RGBA{R: 158, G: 158, B: 158, A: 255}
	smoothedColor = color.RGBA{R: 255, G: 82, B: 82, A: 255}
)

// profileXYs returns the raw and smoothed series against distance along route.
func (rep *Report) profileXYs() (raw, smoothed plotter.XYs) {
	raw = make(plotter.XYs, len(rep.Points))
	smoothed = make(plotter.XYs, len(rep.Points))
	for i, p := range rep.Points {
		raw[i] = plotter.XY{X: p.DistanceAlongRoute, Y: p.Density}
		smoothed[i] = plotter.XY{X: p.DistanceAlongRoute, Y: p.DensitySmoothed}
	}
	return raw, smoothed
}

// WritePNG renders the density profile as a PNG line chart.
func (rep *Report) WritePNG(w io.Writer) error {
	if len(rep.Points) == 0 {
		return ErrEmptyProfile
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Stellar density: %s (%s, kernel %.1f ly)", rep.RouteName, rep.Mode, rep.KernelWidth)
	p.X.Label.Text = "Distance along route (ly)"
	p.Y.Label.Text = "Density (systems/ly³)"
	p.Add(plotter.NewGrid())

	rawPts, smoothPts := rep.profileXYs()

	rawLine, err := plotter.NewLine(rawPts)
	if err != nil {
		return err
	}
	rawLine.Color = rawColor
	rawLine.Width = vg.Points(1)
	rawLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(rawLine)
	p.Legend.Add("density", rawLine)

	smoothLine, err := plotter.NewLine(smoothPts)
	if err != nil {
		return err
	}
	smoothLine.Color = smoothedColor
	smoothLine.Width = vg.Points(2)
	p.Add(smoothLine)
	p.Legend.Add("smoothed", smoothLine)

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	wt, err := p.WriterTo(14*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("failed to render plot: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
