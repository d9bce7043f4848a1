package artifacts

import (
	"log/slog"

	apperrors "agviz/internal/errors"
	"agviz/pkg/contracts/domain"
)

var simulationColumns = []string{"path", "observation", "return", "volatility"}

// LoadSimulation loads a long-format simulation CSV and derives the
// distinct-path count and the observations-per-path scalar.
//
// Observations-per-path is taken from the first path group's row count;
// the panel is assumed rectangular and the remaining groups are not
// checked, matching the engine's output contract.
func LoadSimulation(path string) (*domain.SimulationPanel, error) {
	table, err := readTable("simulation file", path)
	if err != nil {
		return nil, err
	}

	if missing := missingColumns(table, simulationColumns); len(missing) > 0 {
		return nil, apperrors.NewSchemaMissing(path, missing)
	}

	paths, err := table.FloatColumn("path")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}
	observations, err := table.FloatColumn("observation")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}
	returns, err := table.FloatColumn("return")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}
	volatilities, err := table.FloatColumn("volatility")
	if err != nil {
		return nil, apperrors.NewParse(path, "csv", err)
	}

	panel := &domain.SimulationPanel{
		Rows: make([]domain.SimulationRow, len(paths)),
	}

	seen := make(map[int]struct{})
	firstPath := int(paths[0])
	firstGroupCount := 0
	for i := range paths {
		id := int(paths[i])
		panel.Rows[i] = domain.SimulationRow{
			Path:        id,
			Observation: int(observations[i]),
			Return:      returns[i],
			Volatility:  volatilities[i],
		}
		seen[id] = struct{}{}
		if id == firstPath {
			firstGroupCount++
		}
	}

	panel.NPaths = len(seen)
	panel.NObsPerPath = firstGroupCount

	slog.Debug("loaded simulation artifact",
		slog.String("path", path),
		slog.Int("n_paths", panel.NPaths),
		slog.Int("n_obs_per_path", panel.NObsPerPath))

	return panel, nil
}
