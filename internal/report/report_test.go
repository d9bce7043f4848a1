package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agviz/pkg/contracts/domain"
)

func fixedClock() func() time.Time {
	ts := time.Date(2026, time.March, 14, 9, 26, 53, 0, time.UTC)
	return func() time.Time { return ts }
}

func testGenerator() *Generator {
	return NewGenerator(WithClock(fixedClock()))
}

func floatPtr(v float64) *float64 { return &v }

func testModel() *domain.ModelArtifact {
	return &domain.ModelArtifact{
		Spec: &domain.ModelSpec{
			Arima: domain.ArimaOrder{P: 1, D: 0, Q: 1},
			Garch: domain.GarchOrder{P: 1, Q: 1},
		},
		Parameters: &domain.ModelParameters{
			Arima: domain.ArimaParameters{
				Intercept: floatPtr(0.0005),
				ARCoef:    []float64{0.35},
				MACoef:    []float64{-0.12},
			},
			Garch: domain.GarchParameters{
				Omega:     floatPtr(0.00001),
				AlphaCoef: []float64{0.08},
				BetaCoef:  []float64{0.90},
			},
		},
	}
}

func writePlot(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "plot.png")
	// Minimal PNG header is enough for embedding tests.
	require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, 0o644))
	return path
}

func TestFitReport(t *testing.T) {
	dir := t.TempDir()
	plot := writePlot(t, dir)
	out := filepath.Join(dir, "fit_report.md")

	path, err := testGenerator().FitReport([]float64{0.01, -0.02, 0.015, 0.005, -0.01}, testModel(), plot, out, false)
	require.NoError(t, err)
	assert.Equal(t, out, path)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "# ARIMA-GARCH Model Fit Report")
	assert.Contains(t, text, "**Generated:** 2026-03-14 09:26:53")
	assert.Contains(t, text, "**ARIMA(1,0,1)-GARCH(1,1)**")
	assert.Contains(t, text, "| Count | 5 |")
	assert.Contains(t, text, "- **Intercept (μ):** 0.000500")
	assert.Contains(t, text, "  - φ1 = 0.350000")
	assert.Contains(t, text, "  - θ1 = -0.120000")
	assert.Contains(t, text, "- **Omega (ω):** 0.000010 - Base level of volatility")
	assert.Contains(t, text, "**Volatility Persistence:** 0.9800")
	assert.Contains(t, text, "High persistence suggests volatility shocks decay slowly.")
	assert.Contains(t, text, "![Fit Diagnostics Plot](plot.png)")
	assert.Contains(t, text, "*Report generated by agviz on 2026-03-14 at 09:26:53*")
}

func TestFitReportWithoutParameters(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fit_report.md")

	model := &domain.ModelArtifact{Spec: testModel().Spec}
	_, err := testGenerator().FitReport([]float64{0.01, 0.02, 0.03}, model, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "### ARIMA Parameters")
	assert.Contains(t, text, "### GARCH Parameters")
	assert.NotContains(t, text, "Intercept")
	assert.NotContains(t, text, "Volatility Persistence")
}

func TestFitReportNilModel(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "fit_report.md")

	_, err := testGenerator().FitReport([]float64{0.01, 0.02}, nil, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "**Unknown Model**")
}

func TestForecastReportDetailedTable(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "forecast_report.md")

	forecast := &domain.ForecastTable{
		Steps: []domain.ForecastStep{
			{Step: 1, Mean: 0.05, StdDev: 0.1},
			{Step: 2, Mean: 0.04, StdDev: 0.11},
		},
	}

	_, err := testGenerator().ForecastReport(testModel(), forecast, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	// Interval bounds use the rounded 1.96 multiplier.
	assert.Contains(t, text, "| 1 | 0.050000 | 0.100000 | -0.146000 | 0.246000 |")
	assert.Contains(t, text, "| 2 | 0.040000 | 0.110000 | -0.175600 | 0.255600 |")
	assert.Contains(t, text, "**2-step horizon**")
	assert.Contains(t, text, "agviz fit -d updated_data.csv -a 1,0,1 -g 1,1 -o updated_model.json")
	assert.Contains(t, text, "agviz simulate -m model.json -p 1000 -n 2 -o scenarios.csv")
}

func TestForecastReportInsights(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "forecast_report.md")

	// Rising uncertainty: last std dev is double the first.
	forecast := &domain.ForecastTable{
		Steps: []domain.ForecastStep{
			{Step: 1, Mean: 0.01, StdDev: 0.10},
			{Step: 2, Mean: 0.02, StdDev: 0.15},
			{Step: 3, Mean: 0.03, StdDev: 0.20},
		},
	}

	_, err := testGenerator().ForecastReport(testModel(), forecast, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "upward trend of approximately 0.0200")
	assert.Contains(t, text, "increases significantly (by 100.0%)")
}

func TestForecastReportIdempotent(t *testing.T) {
	dir := t.TempDir()
	plot := writePlot(t, dir)
	out := filepath.Join(dir, "forecast_report.md")

	forecast := &domain.ForecastTable{
		Steps: []domain.ForecastStep{{Step: 1, Mean: 0.05, StdDev: 0.1}},
	}

	gen := testGenerator()
	_, err := gen.ForecastReport(testModel(), forecast, plot, out, false)
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	_, err = gen.ForecastReport(testModel(), forecast, plot, out, false)
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDiagnosticsReportWithTests(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "diagnostics_report.md")

	diag := &domain.DiagnosticsReport{
		LjungBox: &domain.LjungBoxTest{
			Lags:       []int{5, 10, 15},
			Statistics: []float64{3.21, 8.54, 22.10},
			PValues:    []float64{0.668, 0.576, 0.012},
		},
		JarqueBera: &domain.JarqueBeraTest{Statistic: 4.73, PValue: 0.094},
	}

	_, err := testGenerator().DiagnosticsReport(testModel(), make([]float64, 250), diag, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "**250 observations**")
	assert.Contains(t, text, "| 5 | 3.2100 | 0.6680 | ✓ Pass |")
	assert.Contains(t, text, "| 15 | 22.1000 | 0.0120 | ✗ Fail |")
	assert.Contains(t, text, "1 out of 3 tests show some autocorrelation")
	assert.Contains(t, text, "Residuals appear approximately normally distributed")
	assert.Contains(t, text, "shows acceptable fit")
}

func TestDiagnosticsReportWithoutTests(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "diagnostics_report.md")

	for _, diag := range []*domain.DiagnosticsReport{nil, {}} {
		_, err := testGenerator().DiagnosticsReport(testModel(), make([]float64, 10), diag, writePlot(t, dir), out, false)
		require.NoError(t, err)

		content, err := os.ReadFile(out)
		require.NoError(t, err)
		text := string(content)

		assert.Contains(t, text, "*Diagnostic test results not available.*")
		assert.Contains(t, text, "Examine the residual plots above")
	}
}

func TestDiagnosticsReportSquaredResiduals(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "diagnostics_report.md")

	diag := &domain.DiagnosticsReport{
		LjungBoxSquared: &domain.LjungBoxTest{
			Lags:       []int{5},
			Statistics: []float64{1.2},
			PValues:    []float64{0.9},
		},
	}

	_, err := testGenerator().DiagnosticsReport(testModel(), make([]float64, 10), diag, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "### Ljung-Box Test on Squared Residuals")
	assert.Contains(t, text, "GARCH component adequately models the conditional variance")
}

func TestSimulationReport(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "simulation_report.md")

	panel := &domain.SimulationPanel{NPaths: 2, NObsPerPath: 3}
	for p := 0; p < 2; p++ {
		for o := 0; o < 3; o++ {
			panel.Rows = append(panel.Rows, domain.SimulationRow{
				Path:        p,
				Observation: o,
				Return:      0.01 * float64(o+1) * float64(p+1),
				Volatility:  0.05,
			})
		}
	}

	_, err := testGenerator().SimulationReport(testModel(), panel, writePlot(t, dir), out, false)
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "simulating **2 paths** of length **3**")
	assert.Contains(t, text, "| Total Observations | 6 |")
	assert.Contains(t, text, "### Terminal Value Statistics (End of Horizon)")
	assert.Contains(t, text, "| Mean Terminal Value | 0.045000 |")
	assert.Contains(t, text, "agviz simulate -m alt_model.json -p 2 -n 3 -o alt_simulation.csv --markdown")
}

func TestImageMarkdownEmbedding(t *testing.T) {
	dir := t.TempDir()
	plot := writePlot(t, dir)

	embedded := imageMarkdown(plot, "Chart", true)
	assert.True(t, strings.HasPrefix(embedded, "![Chart](data:image/png;base64,"), embedded)

	relative := imageMarkdown(plot, "Chart", false)
	assert.Equal(t, "![Chart](plot.png)", relative)

	// A missing file falls back to the relative reference even when
	// embedding was requested.
	missing := imageMarkdown(filepath.Join(dir, "absent.png"), "Chart", true)
	assert.Equal(t, "![Chart](absent.png)", missing)
}

func TestReportCreatesOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "reports", "fit_report.md")

	_, err := testGenerator().FitReport([]float64{0.01, 0.02}, testModel(), writePlot(t, dir), out, false)
	require.NoError(t, err)

	_, err = os.Stat(out)
	require.NoError(t, err)
}
