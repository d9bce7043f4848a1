package plotting

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// FitDiagnostics renders the fit diagnostic figure: the observed series on
// top and a fixed-format summary-statistics panel beneath it. The file is
// written as fit_diagnostics.png inside outputDir.
func FitDiagnostics(series []float64, model *domain.ModelArtifact, outputDir string) (string, error) {
	if err := ensureOutputDir(outputDir); err != nil {
		return "", err
	}

	spec := domain.FormatModelSpec(model)

	seriesPlot := plot.New()
	seriesPlot.Title.Text = "Time Series Data - " + spec
	seriesPlot.X.Label.Text = "Observation"
	seriesPlot.Y.Label.Text = "Value"

	line, err := plotter.NewLine(indexedXYs(series))
	if err != nil {
		return "", fmt.Errorf("build series line: %w", err)
	}
	line.LineStyle.Color = colorSeries
	line.LineStyle.Width = vg.Points(1)
	seriesPlot.Add(plotter.NewGrid(), line)
	seriesPlot.Legend.Add("Observed Data", line)
	seriesPlot.Legend.Top = true

	statsPlot, err := summaryPanel(spec, stats.Summarize(series))
	if err != nil {
		return "", err
	}

	img := vgimg.New(12*vg.Inch, 8*vg.Inch)
	dc := draw.New(img)
	pad := vg.Millimeter * 2

	// 3:1 height split between the series and the statistics panel.
	seriesPlot.Draw(subCanvas(dc, 0, 0.25, 1, 1, pad))
	statsPlot.Draw(subCanvas(dc, 0, 0, 1, 0.25, pad))

	outputPath := filepath.Join(outputDir, FitDiagnosticsFile)
	if err := writePNG(img, outputPath); err != nil {
		return "", err
	}

	slog.Info("wrote fit diagnostics plot",
		slog.String("path", outputPath),
		slog.Int("observations", len(series)))

	return outputPath, nil
}

// summaryPanel builds an axis-less plot carrying the summary statistics as
// a text block.
func summaryPanel(spec string, s stats.Summary) (*plot.Plot, error) {
	lines := []string{
		fmt.Sprintf("Model: %s", spec),
		fmt.Sprintf("Observations: %d", s.Count),
		fmt.Sprintf("Mean: %.6f", s.Mean),
		fmt.Sprintf("Std Dev: %.6f", s.StdDev),
		fmt.Sprintf("Min: %.6f", s.Min),
		fmt.Sprintf("Max: %.6f", s.Max),
		fmt.Sprintf("Skewness: %.4f", s.Skewness),
		fmt.Sprintf("Kurtosis: %.4f", s.Kurtosis),
	}

	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1

	labels := plotter.XYLabels{
		XYs:    make(plotter.XYs, len(lines)),
		Labels: lines,
	}
	for i := range lines {
		labels.XYs[i] = plotter.XY{X: 0.05, Y: 0.92 - float64(i)*0.115}
	}

	lab, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, fmt.Errorf("build summary labels: %w", err)
	}
	p.Add(lab)
	return p, nil
}
