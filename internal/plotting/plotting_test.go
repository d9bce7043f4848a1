package plotting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agviz/pkg/contracts/domain"
)

var testModel = &domain.ModelArtifact{
	Spec: &domain.ModelSpec{
		Arima: domain.ArimaOrder{P: 1, D: 0, Q: 1},
		Garch: domain.GarchOrder{P: 1, Q: 1},
	},
	Parameters: &domain.ModelParameters{},
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4], "file is not a PNG")
}

func testSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 0.01 * float64(i%7-3)
	}
	return out
}

func TestFitDiagnostics(t *testing.T) {
	dir := t.TempDir()

	path, err := FitDiagnostics(testSeries(50), testModel, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FitDiagnosticsFile), path)
	assertPNG(t, path)
}

func TestFitDiagnosticsCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output")

	path, err := FitDiagnostics(testSeries(10), testModel, dir)
	require.NoError(t, err)
	assertPNG(t, path)
}

func TestForecast(t *testing.T) {
	forecast := &domain.ForecastTable{
		Steps: []domain.ForecastStep{
			{Step: 1, Mean: 0.05, StdDev: 0.1},
			{Step: 2, Mean: 0.04, StdDev: 0.11},
			{Step: 3, Mean: 0.03, StdDev: 0.12},
		},
	}

	outputPath := filepath.Join(t.TempDir(), "forecast.png")
	path, err := Forecast(testModel, forecast, nil, outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
	assertPNG(t, path)
}

func TestForecastOverwritesExistingFile(t *testing.T) {
	forecast := &domain.ForecastTable{
		Steps: []domain.ForecastStep{{Step: 1, Mean: 0.05, StdDev: 0.1}},
	}

	outputPath := filepath.Join(t.TempDir(), "forecast.png")
	require.NoError(t, os.WriteFile(outputPath, []byte("stale"), 0644))

	_, err := Forecast(testModel, forecast, []float64{0.95}, outputPath)
	require.NoError(t, err)
	assertPNG(t, outputPath)
}

func TestResidualDiagnostics(t *testing.T) {
	dir := t.TempDir()

	path, err := ResidualDiagnostics(testModel, testSeries(100), dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ResidualDiagnosticsFile), path)
	assertPNG(t, path)
}

func TestResidualDiagnosticsDeterministic(t *testing.T) {
	// The synthetic residual draw is seeded, so two renders of the same
	// series are byte-identical.
	dirA := t.TempDir()
	dirB := t.TempDir()

	pathA, err := ResidualDiagnostics(testModel, testSeries(60), dirA)
	require.NoError(t, err)
	pathB, err := ResidualDiagnostics(testModel, testSeries(60), dirB)
	require.NoError(t, err)

	bytesA, err := os.ReadFile(pathA)
	require.NoError(t, err)
	bytesB, err := os.ReadFile(pathB)
	require.NoError(t, err)
	assert.Equal(t, bytesA, bytesB)
}

func testPanel(nPaths, nObs int) *domain.SimulationPanel {
	panel := &domain.SimulationPanel{NPaths: nPaths, NObsPerPath: nObs}
	for p := 0; p < nPaths; p++ {
		for o := 0; o < nObs; o++ {
			panel.Rows = append(panel.Rows, domain.SimulationRow{
				Path:        p,
				Observation: o,
				Return:      0.01*float64(o%5) - 0.002*float64(p),
				Volatility:  0.05,
			})
		}
	}
	return panel
}

func TestSimulationPaths(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "sim.png")

	path, err := SimulationPaths(testPanel(20, 30), 5, outputPath)
	require.NoError(t, err)
	assert.Equal(t, outputPath, path)
	assertPNG(t, path)
}

func TestSimulationPathsClampsPathCount(t *testing.T) {
	// Asking for more trajectories than exist must not fail.
	outputPath := filepath.Join(t.TempDir(), "sim.png")

	_, err := SimulationPaths(testPanel(3, 10), 50, outputPath)
	require.NoError(t, err)
	assertPNG(t, outputPath)
}
