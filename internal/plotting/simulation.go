package plotting

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// DefaultPathsToPlot bounds how many individual trajectories are overlaid
// when the caller does not ask for a specific count.
const DefaultPathsToPlot = 10

// SimulationPaths renders the simulation figure: overlaid individual
// trajectories with the cross-path mean and the 5th-95th percentile band
// on the left, and the terminal-value distribution on the right. The first
// nPathsToPlot path identifiers are drawn, not a random sample. When
// outputPath is empty the plot is written as simulation_paths.png in the
// working directory.
func SimulationPaths(panel *domain.SimulationPanel, nPathsToPlot int, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = SimulationPathsFile
	}
	if nPathsToPlot <= 0 {
		nPathsToPlot = DefaultPathsToPlot
	}

	nToPlot := nPathsToPlot
	if panel.NPaths < nToPlot {
		nToPlot = panel.NPaths
	}

	left, err := pathsPanel(panel, nToPlot)
	if err != nil {
		return "", err
	}
	right, err := terminalPanel(panel)
	if err != nil {
		return "", err
	}

	img := vgimg.New(15*vg.Inch, 6*vg.Inch)
	dc := draw.New(img)
	pad := vg.Millimeter * 3

	left.Draw(subCanvas(dc, 0, 0, 0.5, 1, pad))
	right.Draw(subCanvas(dc, 0.5, 0, 1, 1, pad))

	if err := writePNG(img, outputPath); err != nil {
		return "", err
	}

	slog.Info("wrote simulation paths plot",
		slog.String("path", outputPath),
		slog.Int("paths_plotted", nToPlot),
		slog.Int("n_paths", panel.NPaths))

	return outputPath, nil
}

func pathsPanel(panel *domain.SimulationPanel, nToPlot int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Simulated Paths (showing %d of %d)", nToPlot, panel.NPaths)
	p.X.Label.Text = "Observation"
	p.Y.Label.Text = "Simulated Returns"
	p.Add(plotter.NewGrid())

	// Individual trajectories, low opacity, first-N path identifiers.
	for pathID := 0; pathID < nToPlot; pathID++ {
		obs, returns := panel.PathSeries(pathID)
		if len(obs) == 0 {
			continue
		}
		xs := make([]float64, len(obs))
		for i, o := range obs {
			xs[i] = float64(o)
		}
		line, err := plotter.NewLine(xyPairs(xs, returns))
		if err != nil {
			return nil, fmt.Errorf("build path %d line: %w", pathID, err)
		}
		line.LineStyle.Color = colorPathGray
		line.LineStyle.Width = vg.Points(0.8)
		p.Add(line)
	}

	obs, groups := panel.GroupByObservation()
	xs := make([]float64, len(obs))
	means := make([]float64, len(obs))
	p5 := make([]float64, len(obs))
	p95 := make([]float64, len(obs))
	for i, o := range obs {
		xs[i] = float64(o)
		means[i] = stats.Mean(groups[i])
		p5[i] = stats.Percentile(groups[i], 5)
		p95[i] = stats.Percentile(groups[i], 95)
	}

	band, err := plotter.NewPolygon(bandXYs(xs, p95, p5))
	if err != nil {
		return nil, fmt.Errorf("build percentile band: %w", err)
	}
	band.Color = colorBand
	band.LineStyle.Width = 0
	p.Add(band)
	p.Legend.Add("5th-95th Percentile", band)

	meanLine, err := plotter.NewLine(xyPairs(xs, means))
	if err != nil {
		return nil, fmt.Errorf("build mean path line: %w", err)
	}
	meanLine.LineStyle.Color = colorMean
	meanLine.LineStyle.Width = vg.Points(2)
	p.Add(meanLine)
	p.Legend.Add("Mean Path", meanLine)

	return p, nil
}

func terminalPanel(panel *domain.SimulationPanel) (*plot.Plot, error) {
	terminal := panel.TerminalReturns()

	p := plot.New()
	p.Title.Text = "Distribution of Terminal Values"
	p.X.Label.Text = "Terminal Value"
	p.Y.Label.Text = "Density"
	p.Add(plotter.NewGrid())

	if len(terminal) == 0 {
		return p, nil
	}

	hist, err := plotter.NewHist(plotter.Values(terminal), 30)
	if err != nil {
		return nil, fmt.Errorf("build terminal histogram: %w", err)
	}
	hist.Normalize(1)
	hist.FillColor = colorHist
	p.Add(hist)

	mean := stats.Mean(terminal)
	_, _, _, yMax := hist.DataRange()
	meanLine, err := plotter.NewLine(plotter.XYs{
		{X: mean, Y: 0},
		{X: mean, Y: yMax},
	})
	if err != nil {
		return nil, fmt.Errorf("build terminal mean line: %w", err)
	}
	meanLine.LineStyle.Color = colorRefRed
	meanLine.LineStyle.Width = vg.Points(2)
	meanLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(meanLine)
	p.Legend.Add(fmt.Sprintf("Mean: %.4f", mean), meanLine)

	return p, nil
}
