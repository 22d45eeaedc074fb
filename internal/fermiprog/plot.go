package fermiprog

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// binProfile sums event weights into nbins phase bins over [0, 1).
func binProfile(phases, weights []float64, nbins int) []float64 {
	bins := make([]float64, nbins)
	for i, p := range phases {
		b := int(p * float64(nbins))
		if b >= nbins { // phase exactly folding to 1 from rounding
			b = nbins - 1
		}
		bins[b] += weights[i]
	}
	return bins
}

// writeProfile draws the weighted pulse profile as a bar chart.
func writeProfile(path, pulsar string, phases, weights []float64,
	nbins int) error {
	if nbins < 1 {
		return fmt.Errorf("profile needs at least 1 bin, have %d", nbins)
	}
	bins := binProfile(phases, weights, nbins)

	p := plot.New()
	p.Title.Text = pulsar
	p.X.Label.Text = "Pulse phase"
	p.Y.Label.Text = "Weighted counts"

	w := vg.Points(float64(6*vg.Inch) / float64(nbins) * .9)
	bars, err := plotter.NewBarChart(plotter.Values(bins), w)
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(phaseLabels(nbins)...)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// phaseLabels marks the quarter phases and leaves other bins blank.
func phaseLabels(nbins int) []string {
	labels := make([]string, nbins)
	for q := 0; q < 4; q++ {
		labels[q*nbins/4] = fmt.Sprintf("%.2f", float64(q)/4)
	}
	return labels
}
