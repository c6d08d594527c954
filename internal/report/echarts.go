package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

func lineData(xs, ys func(i int) float64, n int) []opts.LineData {
	data := make([]opts.LineData, n)
	for i := range data {
		data[i] = opts.LineData{Value: []interface{}{xs(i), ys(i)}}
	}
	return data
}

// WriteHTML renders the density profile as an interactive HTML chart.
func (rep *Report) WriteHTML(w io.Writer) error {
	if len(rep.Points) == 0 {
		return ErrEmptyProfile
	}

	subtitle := fmt.Sprintf(
		"run=%s ts=%s range=%.2f kernel=%.2f samples=%d clamped=%d",
		rep.RunID,
		rep.GeneratedAt.UTC().Format(time.RFC3339),
		rep.MaxRange,
		rep.KernelWidth,
		rep.Summary.Samples,
		rep.Summary.Clamped,
	)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Route Stellar Density", Theme: "dark", Width: "1200px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s (%s)", rep.RouteName, rep.Mode), Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Distance (ly)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: "Density", NameLocation: "middle", NameGap: 50}),
	)

	n := len(rep.Points)
	dist := func(i int) float64 { return rep.Points[i].DistanceAlongRoute }
	line.AddSeries("density", lineData(dist, func(i int) float64 { return rep.Points[i].Density }, n),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#9e9e9e"}))
	line.AddSeries("smoothed", lineData(dist, func(i int) float64 { return rep.Points[i].DensitySmoothed }, n),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff5252"}))

	return line.Render(w)
}
