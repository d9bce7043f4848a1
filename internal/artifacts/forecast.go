package artifacts

import (
	"log/slog"

	apperrors "agviz/internal/errors"
	"agviz/pkg/contracts/domain"
)

// forecastColumns are required in every forecast artifact. The variance
// column is read when present but not required.
var forecastColumns = []string{"step", "mean", "std_dev"}

// LoadForecast loads a forecast CSV into a ForecastTable.
func LoadForecast(path string) (*domain.ForecastTable, error) {
	table, err := readTable("forecast file", path)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(table, forecastColumns); len(missing) > 0 {
		return nil, apperrors.NewSchemaMissing(path, missing)
	}

	steps, err := table.FloatColumn("step")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}
	means, err := table.FloatColumn("mean")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}
	stdDevs, err := table.FloatColumn("std_dev")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}

	forecast := &domain.ForecastTable{
		Steps:       make([]domain.ForecastStep, len(steps)),
		HasVariance: table.HasColumn("variance"),
	}

	var variances []float64
	if forecast.HasVariance {
		variances, err = table.FloatColumn("variance")
		if err != nil {
			return nil, apperrors.NewParse(path, "csv", err)
		}
	}

	for i := range steps {
		forecast.Steps[i] = domain.ForecastStep{
			Step:   int(steps[i]),
			Mean:   means[i],
			StdDev: stdDevs[i],
		}
		if forecast.HasVariance {
			forecast.Steps[i].Variance = variances[i]
		}
	}

	slog.Debug("loaded forecast artifact",
		slog.String("path", path),
		slog.Int("horizon", forecast.Horizon()),
		slog.Bool("has_variance", forecast.HasVariance))

	return forecast, nil
}
