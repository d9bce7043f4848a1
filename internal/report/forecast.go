package report

import (
	"math"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// forecastZ is the two-sided 95% multiplier used for the detailed table.
// The rounded textbook value is deliberate so that tabulated intervals are
// easy to reproduce by hand; the chart uses exact quantiles.
const forecastZ = 1.96

// ForecastReport writes the Markdown report for a forecast run: summary
// statistics over the horizon, the trajectory chart, a per-step interval
// table and trend/uncertainty insights.
func (g *Generator) ForecastReport(model *domain.ModelArtifact, forecast *domain.ForecastTable, plotPath, outputPath string, embedImages bool) (string, error) {
	spec := domain.FormatModelSpec(model)
	horizon := forecast.Horizon()
	means := forecast.Means()
	stdDevs := forecast.StdDevs()

	var b builder
	b.line("# ARIMA-GARCH Forecast Report")
	b.blank()
	b.linef("**Generated:** %s", g.timestamp())

	b.heading(2, "Overview")
	b.linef("This report presents forecasts generated from a **%s** model over a **%d-step horizon**.", spec, horizon)

	b.heading(2, "Model Specification")
	b.linef("- **Model Type:** %s", spec)
	b.linef("- **Forecast Horizon:** %d steps ahead", horizon)
	b.linef("- **Date Generated:** %s", g.dateStamp())

	b.heading(2, "Methodology")
	b.line(forecastMethodology)

	b.heading(2, "Forecast Summary")
	b.line("| Statistic | Value |")
	b.line("|-----------|-------|")
	b.linef("| Mean of Forecasts | %.6f |", stats.Mean(means))
	b.linef("| Std Dev of Forecasts | %.6f |", stats.SampleStdDev(means))
	b.linef("| Min Forecast | %.6f |", minOf(means))
	b.linef("| Max Forecast | %.6f |", maxOf(means))
	b.linef("| Average Forecast Std Dev | %.6f |", stats.Mean(stdDevs))

	b.heading(2, "Forecast Trajectory")
	b.line(imageMarkdown(plotPath, "Forecast Plot with Confidence Intervals", embedImages))
	b.blank()
	b.line("The plot above shows the mean forecast (blue line) along with 68% and 95% confidence intervals.")

	b.heading(2, "Detailed Forecast Table")
	b.line("| Step | Mean Forecast | Std Dev | 95% CI Lower | 95% CI Upper |")
	b.line("|------|---------------|---------|--------------|--------------|")
	for _, step := range forecast.Steps {
		lower := step.Mean - forecastZ*step.StdDev
		upper := step.Mean + forecastZ*step.StdDev
		b.linef("| %d | %.6f | %.6f | %.6f | %.6f |", step.Step, step.Mean, step.StdDev, lower, upper)
	}

	b.heading(2, "Key Insights")
	g.appendForecastInsights(&b, means, stdDevs)

	b.heading(2, "Caveats and Considerations")
	b.line(forecastCaveats)

	b.heading(2, "Next Steps")
	g.appendForecastNextSteps(&b, model, horizon)

	b.heading(2, "References")
	b.line("- Bollerslev, T. (1986). Generalized autoregressive conditional heteroskedasticity. Journal of Econometrics.")
	b.line("- Engle, R. F. (1982). Autoregressive Conditional Heteroscedasticity with Estimates of the Variance of United Kingdom Inflation.")

	b.line(g.footer())

	return g.write("forecast", b.String(), outputPath)
}

func (g *Generator) appendForecastInsights(b *builder, means, stdDevs []float64) {
	if len(means) > 1 {
		trend := means[len(means)-1] - means[0]
		switch {
		case math.Abs(trend) < 0.01*math.Abs(means[0]):
			b.line("- **Trend:** The forecast exhibits a relatively stable trajectory with minimal drift.")
		case trend > 0:
			b.linef("- **Trend:** The forecast shows an upward trend of approximately %.4f over the horizon.", trend)
		default:
			b.linef("- **Trend:** The forecast shows a downward trend of approximately %.4f over the horizon.", math.Abs(trend))
		}
	}

	if len(stdDevs) > 1 && stdDevs[0] != 0 {
		growth := stdDevs[len(stdDevs)-1] / stdDevs[0]
		switch {
		case growth > 1.5:
			b.linef("- **Uncertainty Growth:** Forecast uncertainty increases significantly (by %.1f%%) over the horizon, indicating higher confidence in near-term predictions.", (growth-1)*100)
		case growth > 1.1:
			b.linef("- **Uncertainty Growth:** Forecast uncertainty increases moderately (by %.1f%%) over the horizon.", (growth-1)*100)
		default:
			b.line("- **Uncertainty:** Forecast uncertainty remains relatively stable across the horizon.")
		}
	}

	if stats.Mean(stdDevs) > 0 {
		meanForecast := stats.Mean(means)
		if meanForecast != 0 {
			cv := stats.Summarize(means).StdDev / math.Abs(meanForecast)
			if cv < 0.5 {
				b.linef("- **Coefficient of Variation:** %.4f - Relatively low variability in forecasts.", cv)
			} else {
				b.linef("- **Coefficient of Variation:** %.4f - Substantial variability in forecasts.", cv)
			}
		}
	}
}

func (g *Generator) appendForecastNextSteps(b *builder, model *domain.ModelArtifact, horizon int) {
	arima := domain.ArimaOrder{P: 1, D: 0, Q: 1}
	garch := domain.GarchOrder{P: 1, Q: 1}
	if model != nil && model.Spec != nil {
		arima = model.Spec.Arima
		garch = model.Spec.Garch
	}

	b.line("1. **Validate Forecasts:** Compare with realized values when available to assess forecast accuracy")
	b.blank()
	b.line("2. **Update Model:** Consider refitting the model periodically as new data becomes available:")
	b.line("   ```bash")
	b.linef("   agviz fit -d updated_data.csv -a %d,%d,%d -g %d,%d -o updated_model.json",
		arima.P, arima.D, arima.Q, garch.P, garch.Q)
	b.line("   ```")
	b.blank()
	b.line("3. **Scenario Analysis:** Simulate multiple paths to understand the distribution of possible outcomes:")
	b.line("   ```bash")
	b.linef("   agviz simulate -m model.json -p 1000 -n %d -o scenarios.csv", horizon)
	b.line("   ```")
	b.blank()
	b.line("4. **Combine with Domain Knowledge:** Integrate forecasts with expert judgment and market intelligence")
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

const forecastMethodology = `### Multi-Step Ahead Forecasting

ARIMA-GARCH models produce forecasts for both the conditional mean and conditional variance:

1. **Mean Forecast:** Predicted value at each future time step based on the ARIMA component
2. **Variance Forecast:** Predicted uncertainty (volatility) at each future time step based on the GARCH component

### Confidence Intervals

Forecast confidence intervals are computed assuming normally distributed forecast errors:
- **68% CI:** Approximately ±1 standard deviation from the mean
- **95% CI:** Approximately ±2 standard deviations from the mean

Note: As the forecast horizon increases, prediction intervals typically widen, reflecting increased uncertainty.`

const forecastCaveats = `1. **Forecast Horizon:** Forecast accuracy typically decreases as the horizon increases. Near-term forecasts (1-10 steps) are generally more reliable.

2. **Model Assumptions:** Forecasts assume:
   - Model structure remains appropriate for future observations
   - Parameters remain stable (no structural breaks)
   - No unforeseen shocks or regime changes

3. **Confidence Intervals:**
   - Assume normally distributed forecast errors
   - Do not account for parameter estimation uncertainty
   - May understate true uncertainty in volatile markets

4. **Conditional Nature:** Forecasts are conditional on the model specification and historical data used for estimation.

5. **Use Case Dependent:** Forecasts should be interpreted in context:
   - Financial returns: Short horizons typically more useful
   - Volatility forecasts: May be more stable than mean forecasts`
