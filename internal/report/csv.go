package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"sample", "distance_along_route", "density", "density_smoothed"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one row per Sample in route order.
func (rep *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, p := range rep.Points {
		row := []string{
			strconv.Itoa(i),
			formatFloat(p.DistanceAlongRoute),
			formatFloat(p.Density),
			formatFloat(p.DensitySmoothed),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
