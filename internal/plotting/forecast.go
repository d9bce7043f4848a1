package plotting

import (
	"fmt"
	"image/color"
	"log/slog"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// DefaultConfidenceLevels are the intervals shaded when the caller does
// not supply any.
var DefaultConfidenceLevels = []float64{0.68, 0.95}

// Forecast renders the mean forecast with one shaded confidence band per
// level. The band half-width at each step is the two-sided standard-normal
// quantile for the level times the forecast standard deviation. When
// outputPath is empty the plot is written as forecast.png in the working
// directory.
func Forecast(model *domain.ModelArtifact, forecast *domain.ForecastTable, levels []float64, outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = ForecastFile
	}
	if len(levels) == 0 {
		levels = DefaultConfidenceLevels
	}

	steps := make([]float64, forecast.Horizon())
	for i, s := range forecast.Steps {
		steps[i] = float64(s.Step)
	}
	means := forecast.Means()
	stdDevs := forecast.StdDevs()

	p := plot.New()
	p.Title.Text = "Forecast - " + domain.FormatModelSpec(model)
	p.X.Label.Text = "Forecast Horizon (steps ahead)"
	p.Y.Label.Text = "Forecasted Value"
	p.Add(plotter.NewGrid())

	bandColors := []color.Color{colorBand, colorBandAlt}
	for i, level := range levels {
		z := stats.ZScore(level)
		upper := make([]float64, len(means))
		lower := make([]float64, len(means))
		for j := range means {
			upper[j] = means[j] + z*stdDevs[j]
			lower[j] = means[j] - z*stdDevs[j]
		}

		band, err := plotter.NewPolygon(bandXYs(steps, upper, lower))
		if err != nil {
			return "", fmt.Errorf("build %v%% confidence band: %w", level*100, err)
		}
		band.Color = bandColors[i%len(bandColors)]
		band.LineStyle.Width = 0
		p.Add(band)
		p.Legend.Add(fmt.Sprintf("%d%% CI", int(level*100)), band)
	}

	line, err := plotter.NewLine(xyPairs(steps, means))
	if err != nil {
		return "", fmt.Errorf("build mean forecast line: %w", err)
	}
	line.LineStyle.Color = colorMean
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	p.Legend.Add("Mean Forecast", line)

	if err := ensureOutputDir(dirOf(outputPath)); err != nil {
		return "", err
	}
	if err := p.Save(12*vg.Inch, 6*vg.Inch, outputPath); err != nil {
		return "", fmt.Errorf("save forecast plot: %w", err)
	}

	slog.Info("wrote forecast plot",
		slog.String("path", outputPath),
		slog.Int("horizon", forecast.Horizon()),
		slog.Any("confidence_levels", levels))

	return outputPath, nil
}
