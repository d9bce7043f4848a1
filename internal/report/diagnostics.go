package report

import (
	"agviz/pkg/contracts/domain"
)

// DiagnosticsReport writes the Markdown report for residual diagnostics:
// test result tables with pass/fail marks, the residual chart, and an
// overall adequacy assessment. A nil or empty diagnostics document reduces
// the report to its visual sections.
func (g *Generator) DiagnosticsReport(model *domain.ModelArtifact, series []float64, diag *domain.DiagnosticsReport, plotPath, outputPath string, embedImages bool) (string, error) {
	spec := domain.FormatModelSpec(model)
	nObs := len(series)
	hasTests := !diag.Empty()

	var b builder
	b.line("# ARIMA-GARCH Diagnostic Analysis Report")
	b.blank()
	b.linef("**Generated:** %s", g.timestamp())

	b.heading(2, "Overview")
	b.linef("This report presents comprehensive diagnostic analysis for a fitted **%s** model on **%d observations**.", spec, nObs)

	b.heading(2, "Model Specification")
	b.linef("- **Model Type:** %s", spec)
	b.linef("- **Observations:** %d", nObs)
	b.linef("- **Date Generated:** %s", g.dateStamp())

	b.heading(2, "Methodology")
	b.line(diagnosticsMethodology)

	b.heading(2, "Diagnostic Test Results")
	if hasTests {
		if diag.LjungBox != nil {
			appendLjungBoxTable(&b, "Ljung-Box Test Results", diag.LjungBox)
			appendLjungBoxInterpretation(&b, diag.LjungBox)
		}
		if diag.LjungBoxSquared != nil {
			appendLjungBoxTable(&b, "Ljung-Box Test on Squared Residuals", diag.LjungBoxSquared)
			appendSquaredInterpretation(&b, diag.LjungBoxSquared)
		}
		if diag.JarqueBera != nil {
			appendJarqueBera(&b, diag.JarqueBera)
		}
	} else {
		b.line("*Diagnostic test results not available.*")
	}

	b.heading(2, "Residual Analysis Plots")
	b.line(imageMarkdown(plotPath, "Residual Diagnostic Plots", embedImages))
	b.blank()
	b.line(diagnosticsPlotGuide)

	b.heading(2, "Key Findings")
	b.line("### Model Adequacy Assessment")
	b.blank()
	appendAdequacyAssessment(&b, diag)

	b.heading(2, "Caveats and Considerations")
	b.line(diagnosticsCaveats)

	b.heading(2, "Next Steps")
	b.line(diagnosticsNextSteps)

	b.heading(2, "References")
	b.line("- Ljung, G. M., & Box, G. E. P. (1978). On a Measure of Lack of Fit in Time Series Models. Biometrika.")
	b.line("- Jarque, C. M., & Bera, A. K. (1980). Efficient tests for normality, homoscedasticity and serial independence. Economics Letters.")
	b.line("- Engle, R. F., & Ng, V. K. (1993). Measuring and Testing the Impact of News on Volatility. Journal of Finance.")

	b.line(g.footer())

	return g.write("diagnostics", b.String(), outputPath)
}

func appendLjungBoxTable(b *builder, title string, test *domain.LjungBoxTest) {
	b.linef("### %s", title)
	b.blank()
	b.line("| Lag | Test Statistic | p-value | Result |")
	b.line("|-----|----------------|---------|--------|")

	n := len(test.Lags)
	if len(test.Statistics) < n {
		n = len(test.Statistics)
	}
	if len(test.PValues) < n {
		n = len(test.PValues)
	}
	for i := 0; i < n; i++ {
		result := "✓ Pass"
		if test.PValues[i] <= 0.05 {
			result = "✗ Fail"
		}
		b.linef("| %d | %.4f | %.4f | %s |", test.Lags[i], test.Statistics[i], test.PValues[i], result)
	}
}

func failingCount(pvalues []float64) int {
	n := 0
	for _, p := range pvalues {
		if p <= 0.05 {
			n++
		}
	}
	return n
}

func appendLjungBoxInterpretation(b *builder, test *domain.LjungBoxTest) {
	failing := failingCount(test.PValues)
	b.blank()
	switch {
	case failing == 0:
		b.line("**Interpretation:** All Ljung-Box tests pass, indicating residuals are free from significant autocorrelation. The model adequately captures temporal dependencies.")
	case float64(failing) < float64(len(test.PValues))/2:
		b.linef("**Interpretation:** %d out of %d tests show some autocorrelation. Consider increasing model orders or investigating specific lags.", failing, len(test.PValues))
	default:
		b.line("**Interpretation:** Significant autocorrelation detected in residuals. The model may be misspecified. Consider alternative model orders.")
	}
	b.blank()
}

func appendSquaredInterpretation(b *builder, test *domain.LjungBoxTest) {
	failing := failingCount(test.PValues)
	b.blank()
	if failing == 0 {
		b.line("**Interpretation:** No remaining autocorrelation in squared residuals; the GARCH component adequately models the conditional variance.")
	} else {
		b.linef("**Interpretation:** %d out of %d tests indicate remaining volatility clustering. Consider higher GARCH orders.", failing, len(test.PValues))
	}
	b.blank()
}

func appendJarqueBera(b *builder, test *domain.JarqueBeraTest) {
	b.line("### Jarque-Bera Normality Test")
	b.blank()
	b.line("| Statistic | Value |")
	b.line("|-----------|-------|")
	b.linef("| Test Statistic | %g |", test.Statistic)
	b.linef("| p-value | %g |", test.PValue)
	b.blank()
	if test.PValue > 0.05 {
		b.line("**Interpretation:** Residuals appear approximately normally distributed (p > 0.05). This supports model assumptions.")
	} else {
		b.line("**Interpretation:** Residuals deviate from normality (p ≤ 0.05). This is common in financial data and may suggest considering Student-t innovations or checking for outliers.")
	}
	b.blank()
}

func appendAdequacyAssessment(b *builder, diag *domain.DiagnosticsReport) {
	if diag.Empty() {
		b.line("- Examine the residual plots above for visual assessment of model adequacy.")
		return
	}

	if diag.LjungBox != nil && len(diag.LjungBox.PValues) > 0 {
		pvalues := diag.LjungBox.PValues
		passing := float64(len(pvalues)-failingCount(pvalues)) / float64(len(pvalues))
		switch {
		case passing > 0.8:
			b.line("- **Overall Assessment:** The model demonstrates good fit with most diagnostic tests passing.")
		case passing > 0.5:
			b.line("- **Overall Assessment:** The model shows acceptable fit, though some improvements may be possible.")
		default:
			b.line("- **Overall Assessment:** The model may benefit from specification changes or alternative orders.")
		}
	}

	if diag.JarqueBera != nil {
		switch {
		case diag.JarqueBera.PValue < 0.01:
			b.line("- **Normality:** Residuals show substantial departure from normality. Consider robust methods or alternative innovation distributions.")
		case diag.JarqueBera.PValue < 0.05:
			b.line("- **Normality:** Residuals show some departure from normality, which is common in practice.")
		}
	}
}

const diagnosticsMethodology = `### Purpose of Diagnostic Analysis

Diagnostic tests assess whether the fitted model adequately captures the patterns in the data. Key aspects examined:

1. **Residual Independence:** Are residuals free from autocorrelation?
2. **Normality:** Do residuals follow a normal distribution?
3. **Heteroskedasticity:** Has the GARCH component adequately captured volatility clustering?
4. **Model Adequacy:** Does the model provide a good statistical fit?

### Diagnostic Tests

#### Ljung-Box Test
Tests for autocorrelation in residuals at multiple lags.
- **Null Hypothesis:** Residuals are independently distributed (no autocorrelation)
- **Interpretation:** p-value > 0.05 suggests residuals are uncorrelated (desired)

#### Ljung-Box Test on Squared Residuals
Tests whether GARCH has captured all volatility clustering.
- **Null Hypothesis:** Squared residuals show no autocorrelation
- **Interpretation:** p-value > 0.05 suggests GARCH adequately models conditional variance

#### Jarque-Bera Test
Tests for normality of residuals.
- **Null Hypothesis:** Residuals are normally distributed
- **Interpretation:** p-value > 0.05 suggests approximate normality (though some deviation is common)`

const diagnosticsPlotGuide = `The comprehensive diagnostic plot above includes:

1. **Standardized Residuals:** Should appear as white noise (random fluctuations around zero)
2. **Histogram:** Should approximate a normal distribution
3. **QQ-Plot:** Points should follow the diagonal line for normality
4. **ACF of Residuals:** Should show no significant autocorrelation (bars within confidence bands)
5. **ACF of Squared Residuals:** Should show no significant autocorrelation if GARCH adequately models volatility`

const diagnosticsCaveats = `1. **Diagnostic Limitations:**
   - Tests have varying power depending on sample size
   - Multiple testing increases chance of spurious rejections
   - Some tests (e.g., normality) are often violated in practice without severely impacting usefulness

2. **Practical vs. Statistical Significance:**
   - Slight deviations from ideal diagnostics may be acceptable
   - Consider both statistical tests and visual inspection
   - Economic significance may differ from statistical significance

3. **Model Refinement:**
   - Failed diagnostics suggest areas for improvement, not necessarily model failure
   - Consider both increasing and decreasing model complexity
   - Balance model complexity with interpretability and overfitting concerns

4. **Sample Size Effects:**
   - Diagnostic tests become more powerful with larger samples
   - May detect minor deviations that have little practical impact
   - With small samples, tests may lack power to detect real issues`

const diagnosticsNextSteps = "### If Diagnostics Are Satisfactory\n" +
	"\n" +
	"1. **Proceed with Forecasting:**\n" +
	"   ```bash\n" +
	"   agviz forecast -m model.json -n 30 -o forecast.csv --markdown\n" +
	"   ```\n" +
	"\n" +
	"2. **Generate Scenarios:**\n" +
	"   ```bash\n" +
	"   agviz simulate -m model.json -p 1000 -n 500 -o simulation.csv --markdown\n" +
	"   ```\n" +
	"\n" +
	"### If Diagnostics Indicate Issues\n" +
	"\n" +
	"1. **Try Alternative Specifications:**\n" +
	"   ```bash\n" +
	"   ag select -d data.csv -c BIC --max-p 3 --max-q 3 -o alternative_model.json\n" +
	"   ```\n" +
	"\n" +
	"2. **Increase Model Orders:** If autocorrelation persists, try higher AR/MA orders\n" +
	"\n" +
	"3. **Examine Outliers:** Investigate unusual observations that may affect fit\n" +
	"\n" +
	"4. **Consider Extensions:**\n" +
	"   - Asymmetric GARCH models (if volatility responds differently to positive/negative shocks)\n" +
	"   - Student-t innovations (if heavy tails are present)\n" +
	"   - Seasonal components (if data exhibits seasonality)"
