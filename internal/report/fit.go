package report

import (
	"math"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// FitReport writes the Markdown report describing a model fit: data
// summary statistics with interpretation, the estimated parameters, and
// the fit diagnostics chart.
func (g *Generator) FitReport(series []float64, model *domain.ModelArtifact, plotPath, outputPath string, embedImages bool) (string, error) {
	spec := domain.FormatModelSpec(model)
	summary := stats.Summarize(series)

	var b builder
	b.linef("# ARIMA-GARCH Model Fit Report")
	b.blank()
	b.linef("**Generated:** %s", g.timestamp())

	b.heading(2, "Overview")
	b.linef("This report presents the results of fitting an **%s** model to the provided time series data.", spec)

	b.heading(2, "Model Specification")
	b.linef("- **Model Type:** %s", spec)
	b.linef("- **Observations:** %d", summary.Count)
	b.linef("- **Date Generated:** %s", g.dateStamp())

	b.heading(2, "Methodology")
	b.line(fitMethodology)

	b.heading(2, "Data Summary Statistics")
	b.line("| Statistic | Value |")
	b.line("|-----------|-------|")
	b.linef("| Count | %d |", summary.Count)
	b.linef("| Mean | %.6f |", summary.Mean)
	b.linef("| Std Dev | %.6f |", summary.StdDev)
	b.linef("| Min | %.6f |", summary.Min)
	b.linef("| Max | %.6f |", summary.Max)
	b.linef("| Skewness | %.4f |", summary.Skewness)
	b.linef("| Kurtosis | %.4f |", summary.Kurtosis)

	b.heading(3, "Interpretation")
	switch {
	case math.Abs(summary.Skewness) < 0.5:
		b.line("- **Skewness:** The distribution appears approximately symmetric.")
	case summary.Skewness > 0:
		b.line("- **Skewness:** The distribution is right-skewed (positively skewed) with a tail extending toward positive values.")
	default:
		b.line("- **Skewness:** The distribution is left-skewed (negatively skewed) with a tail extending toward negative values.")
	}
	switch {
	case math.Abs(summary.Kurtosis) < 0.5:
		b.line("- **Kurtosis:** The distribution has approximately normal tail behavior (mesokurtic).")
	case summary.Kurtosis > 0:
		b.line("- **Kurtosis:** The distribution exhibits heavy tails (leptokurtic), suggesting more extreme values than a normal distribution.")
	default:
		b.line("- **Kurtosis:** The distribution has light tails (platykurtic), with fewer extreme values than a normal distribution.")
	}

	b.heading(2, "Model Parameters")
	g.appendParameterSections(&b, model)

	b.heading(2, "Visualizations")
	b.line(imageMarkdown(plotPath, "Fit Diagnostics Plot", embedImages))
	b.blank()
	b.line("The plot above shows the observed time series data along with key summary statistics for the fitted model.")

	b.heading(2, "Key Metrics")
	b.line(fitKeyMetrics)

	b.heading(2, "Caveats and Considerations")
	b.line(fitCaveats)

	b.heading(2, "Next Steps")
	b.line(fitNextSteps)

	b.heading(2, "References")
	b.line("- Bollerslev, T. (1986). Generalized autoregressive conditional heteroskedasticity. Journal of Econometrics.")
	b.line("- Box, G. E. P., & Jenkins, G. M. (1970). Time Series Analysis: Forecasting and Control.")

	b.line(g.footer())

	return g.write("fit", b.String(), outputPath)
}

func (g *Generator) appendParameterSections(b *builder, model *domain.ModelArtifact) {
	var arima *domain.ArimaParameters
	var garch *domain.GarchParameters
	if model != nil && model.Parameters != nil {
		arima = &model.Parameters.Arima
		garch = &model.Parameters.Garch
	}

	b.line("### ARIMA Parameters")
	if arima != nil {
		if arima.Intercept != nil {
			b.linef("- **Intercept (μ):** %.6f", *arima.Intercept)
		}
		if len(arima.ARCoef) > 0 {
			b.line("- **AR Coefficients (φ):**")
			for i, coef := range arima.ARCoef {
				b.linef("  - φ%d = %.6f", i+1, coef)
			}
		}
		if len(arima.MACoef) > 0 {
			b.line("- **MA Coefficients (θ):**")
			for i, coef := range arima.MACoef {
				b.linef("  - θ%d = %.6f", i+1, coef)
			}
		}
	}

	b.blank()
	b.line("### GARCH Parameters")
	if garch != nil {
		if garch.Omega != nil {
			b.linef("- **Omega (ω):** %.6f - Base level of volatility", *garch.Omega)
		}
		if len(garch.AlphaCoef) > 0 {
			b.line("- **Alpha Coefficients (α):** Response to past shocks")
			for i, coef := range garch.AlphaCoef {
				b.linef("  - α%d = %.6f", i+1, coef)
			}
		}
		if len(garch.BetaCoef) > 0 {
			b.line("- **Beta Coefficients (β):** Persistence of volatility")
			for i, coef := range garch.BetaCoef {
				b.linef("  - β%d = %.6f", i+1, coef)
			}
		}
	}

	if model != nil {
		if persistence, ok := model.Persistence(); ok {
			b.blank()
			b.linef("**Volatility Persistence:** %.4f", persistence)
			switch {
			case persistence > 0.99:
				b.line("- Very high persistence indicates volatility shocks have long-lasting effects.")
			case persistence > 0.90:
				b.line("- High persistence suggests volatility shocks decay slowly.")
			default:
				b.line("- Moderate persistence indicates volatility shocks dissipate relatively quickly.")
			}
		}
	}
}

const fitMethodology = `### ARIMA Component
The ARIMA (AutoRegressive Integrated Moving Average) component models the conditional mean of the time series. It captures:
- **AutoRegressive (AR):** Past values' influence on current value
- **Integration (I):** Level of differencing to achieve stationarity
- **Moving Average (MA):** Past forecast errors' influence on current value

### GARCH Component
The GARCH (Generalized AutoRegressive Conditional Heteroskedasticity) component models the conditional variance, capturing:
- **Volatility clustering:** Periods of high/low volatility tend to persist
- **Time-varying variance:** More accurate uncertainty quantification`

const fitKeyMetrics = `The model was successfully estimated using maximum likelihood estimation. Key model quality metrics include:

- **Log-Likelihood:** Higher values indicate better fit to the data
- **AIC (Akaike Information Criterion):** Lower values preferred; balances fit and complexity
- **BIC (Bayesian Information Criterion):** Lower values preferred; penalizes complexity more than AIC`

const fitCaveats = `1. **Model Assumptions:**
   - ARIMA assumes linear relationships in the mean equation
   - GARCH assumes the conditional variance follows a specific functional form
   - Innovations are assumed to be normally distributed (or student-t in some variants)

2. **Sample Size:** Results are most reliable with sufficient data (typically 500+ observations for GARCH models)

3. **Stationarity:** The time series should be stationary (or made stationary through differencing)

4. **Parameter Constraints:** All parameters should satisfy stationarity and non-negativity constraints

5. **Out-of-Sample Performance:** In-sample fit doesn't guarantee good out-of-sample forecasting performance`

const fitNextSteps = "1. **Diagnostic Analysis:** Run residual diagnostics to check model adequacy:\n" +
	"   ```bash\n" +
	"   agviz diagnostics -m model.json -d data.csv -o ./diagnostics/\n" +
	"   ```\n" +
	"\n" +
	"2. **Forecasting:** Generate forecasts with confidence intervals:\n" +
	"   ```bash\n" +
	"   agviz forecast -m model.json -n 30 -o forecast.csv\n" +
	"   ```\n" +
	"\n" +
	"3. **Simulation:** Simulate paths to understand model behavior:\n" +
	"   ```bash\n" +
	"   agviz simulate -m model.json -p 100 -n 1000 -o simulation.csv\n" +
	"   ```\n" +
	"\n" +
	"4. **Model Selection:** Consider comparing with alternative specifications:\n" +
	"   ```bash\n" +
	"   ag select -d data.csv -c BIC -o best_model.json\n" +
	"   ```"
