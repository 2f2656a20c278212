package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/loopfield-labs/efeswarm/phase"
)

// renderChart draws phi and chi against beta as two lines on the same axes
// (phi solid, chi dashed) and saves the result as a PNG.
func renderChart(path string, samples []phase.SweepSample) error {
	p := plot.New()
	p.Title.Text = "Mixing-strength sweep"
	p.X.Label.Text = "beta"
	p.Y.Label.Text = "phi / chi"

	phiPts := make(plotter.XYs, len(samples))
	chiPts := make(plotter.XYs, len(samples))
	for i, s := range samples {
		phiPts[i] = plotter.XY{X: s.Beta, Y: s.Phi}
		chiPts[i] = plotter.XY{X: s.Beta, Y: s.Chi}
	}

	phiLine, err := plotter.NewLine(phiPts)
	if err != nil {
		return fmt.Errorf("building phi line: %w", err)
	}
	phiLine.Width = vg.Points(1.5)
	p.Add(phiLine)
	p.Legend.Add("phi", phiLine)

	chiLine, err := plotter.NewLine(chiPts)
	if err != nil {
		return fmt.Errorf("building chi line: %w", err)
	}
	chiLine.Width = vg.Points(1.5)
	chiLine.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(chiLine)
	p.Legend.Add("chi", chiLine)

	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving chart: %w", err)
	}
	return nil
}
