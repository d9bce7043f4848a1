package report

import (
	"math"

	"agviz/internal/stats"
	"agviz/pkg/contracts/domain"
)

// SimulationReport writes the Markdown report for a Monte Carlo run:
// aggregate and terminal-value statistics, the paths chart, and insights
// about volatility, asymmetry and tail behavior across paths.
func (g *Generator) SimulationReport(model *domain.ModelArtifact, panel *domain.SimulationPanel, plotPath, outputPath string, embedImages bool) (string, error) {
	spec := domain.FormatModelSpec(model)
	all := dropNaN(panel.Returns())
	terminal := dropNaN(panel.LastReturnPerPath())

	var b builder
	b.line("# ARIMA-GARCH Simulation Report")
	b.blank()
	b.linef("**Generated:** %s", g.timestamp())

	b.heading(2, "Overview")
	b.linef("This report presents results from simulating **%d paths** of length **%d** from a fitted **%s** model.",
		panel.NPaths, panel.NObsPerPath, spec)

	b.heading(2, "Model Specification")
	b.linef("- **Model Type:** %s", spec)
	b.linef("- **Number of Paths:** %d", panel.NPaths)
	b.linef("- **Path Length:** %d observations", panel.NObsPerPath)
	b.linef("- **Date Generated:** %s", g.dateStamp())

	b.heading(2, "Methodology")
	b.line(simulationMethodology)

	b.heading(2, "Simulation Statistics")
	if len(all) > 0 {
		summary := stats.Summarize(all)

		b.line("### Aggregate Statistics (All Paths)")
		b.blank()
		b.line("| Statistic | Value |")
		b.line("|-----------|-------|")
		b.linef("| Total Observations | %d |", summary.Count)
		b.linef("| Mean | %.6f |", summary.Mean)
		b.linef("| Std Dev | %.6f |", summary.StdDev)
		b.linef("| Min | %.6f |", summary.Min)
		b.linef("| Max | %.6f |", summary.Max)
		b.linef("| Skewness | %.4f |", summary.Skewness)
		b.linef("| Kurtosis | %.4f |", summary.Kurtosis)
		b.linef("| 5th Percentile | %.6f |", stats.Percentile(all, 5))
		b.linef("| 25th Percentile | %.6f |", stats.Percentile(all, 25))
		b.linef("| Median | %.6f |", stats.Percentile(all, 50))
		b.linef("| 75th Percentile | %.6f |", stats.Percentile(all, 75))
		b.linef("| 95th Percentile | %.6f |", stats.Percentile(all, 95))

		if len(terminal) > 0 {
			terminalSummary := stats.Summarize(terminal)
			b.blank()
			b.line("### Terminal Value Statistics (End of Horizon)")
			b.blank()
			b.line("| Statistic | Value |")
			b.line("|-----------|-------|")
			b.linef("| Mean Terminal Value | %.6f |", terminalSummary.Mean)
			b.linef("| Std Dev Terminal Value | %.6f |", terminalSummary.StdDev)
			b.linef("| Min Terminal Value | %.6f |", terminalSummary.Min)
			b.linef("| Max Terminal Value | %.6f |", terminalSummary.Max)
			b.linef("| 5th Percentile | %.6f |", stats.Percentile(terminal, 5))
			b.linef("| 95th Percentile | %.6f |", stats.Percentile(terminal, 95))
		}
	}

	b.heading(2, "Simulation Paths Visualization")
	b.line(imageMarkdown(plotPath, "Simulation Paths with Percentile Bands", embedImages))
	b.blank()
	b.line(simulationPlotGuide)

	b.heading(2, "Key Insights")
	g.appendSimulationInsights(&b, all, terminal)

	b.heading(2, "Applications")
	b.line(simulationApplications)

	b.heading(2, "Caveats and Considerations")
	b.line(simulationCaveats)

	b.heading(2, "Next Steps")
	g.appendSimulationNextSteps(&b, panel)

	b.heading(2, "References")
	b.line("- Bollerslev, T. (1986). Generalized autoregressive conditional heteroskedasticity. Journal of Econometrics.")
	b.line("- Engle, R. F. (1982). Autoregressive Conditional Heteroscedasticity with Estimates of the Variance of United Kingdom Inflation.")
	b.line("- McNeil, A. J., Frey, R., & Embrechts, P. (2005). Quantitative Risk Management: Concepts, Techniques and Tools.")

	b.line(g.footer())

	return g.write("simulation", b.String(), outputPath)
}

func (g *Generator) appendSimulationInsights(b *builder, all, terminal []float64) {
	if len(all) == 0 {
		return
	}
	summary := stats.Summarize(all)

	switch vol := summary.StdDev; {
	case vol > 0.1:
		b.linef("- **Volatility:** The simulated paths exhibit a standard deviation of %.4f, indicating substantial variability in potential outcomes.", vol)
	case vol > 0.05:
		b.linef("- **Volatility:** The simulated paths exhibit a standard deviation of %.4f, indicating moderate variability in potential outcomes.", vol)
	default:
		b.linef("- **Volatility:** The simulated paths exhibit a standard deviation of %.4f, indicating relatively low variability in potential outcomes.", vol)
	}

	if math.Abs(summary.Skewness) > 0.5 {
		if summary.Skewness > 0 {
			b.linef("- **Asymmetry:** Distribution is right-skewed (skewness = %.2f), suggesting more frequent large positive outcomes.", summary.Skewness)
		} else {
			b.linef("- **Asymmetry:** Distribution is left-skewed (skewness = %.2f), suggesting more frequent large negative outcomes.", summary.Skewness)
		}
	}

	if summary.Kurtosis > 1.0 {
		b.linef("- **Tail Risk:** High kurtosis (%.2f) indicates heavy tails with more extreme values than a normal distribution, suggesting non-negligible tail risk.", summary.Kurtosis)
	}

	b.linef("- **Range of Outcomes:** Simulated values span a range of %.4f, from %.4f to %.4f.",
		summary.Max-summary.Min, summary.Min, summary.Max)

	if len(terminal) > 0 {
		spread := stats.Percentile(terminal, 95) - stats.Percentile(terminal, 5)
		b.linef("- **Terminal Uncertainty:** The 90%% confidence interval for terminal values spans %.4f, illustrating the degree of outcome uncertainty.", spread)
	}
}

func (g *Generator) appendSimulationNextSteps(b *builder, panel *domain.SimulationPanel) {
	b.line("1. **Analyze Specific Scenarios:** Extract and study paths of particular interest")
	b.blank()
	b.line("2. **Calculate Risk Metrics:** Use simulated distribution to compute:")
	b.line("   - Value at Risk (VaR) at various confidence levels")
	b.line("   - Expected Shortfall (Conditional VaR)")
	b.line("   - Maximum drawdown distributions")
	b.blank()
	b.line("3. **Compare with Historical Data:** Validate that simulated characteristics match observed patterns")
	b.blank()
	b.line("4. **Sensitivity Analysis:** Re-simulate with alternative model specifications to assess robustness:")
	b.line("   ```bash")
	b.line("   agviz fit -d data.csv -a 2,0,2 -g 1,1 -o alt_model.json")
	b.linef("   agviz simulate -m alt_model.json -p %d -n %d -o alt_simulation.csv --markdown", panel.NPaths, panel.NObsPerPath)
	b.line("   ```")
	b.blank()
	b.line("5. **Extend Simulation:** For long-term planning, simulate longer horizons:")
	b.line("   ```bash")
	b.line("   agviz simulate -m model.json -p 1000 -n 5000 -o long_term_sim.csv --markdown")
	b.line("   ```")
}

func dropNaN(values []float64) []float64 {
	out := values[:0:0]
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

const simulationMethodology = `### Monte Carlo Simulation

Monte Carlo simulation generates multiple realizations (paths) from the fitted ARIMA-GARCH model to:

1. **Assess Uncertainty:** Understand the range of possible future outcomes
2. **Risk Analysis:** Quantify tail risks and extreme scenarios
3. **Scenario Planning:** Generate distributions for decision-making
4. **Model Validation:** Verify model behavior matches data characteristics

### Simulation Process

Each simulated path is generated by:
1. Drawing random innovations from the specified distribution (Normal or Student-t)
2. Applying ARIMA equations to generate returns
3. Applying GARCH equations to generate time-varying volatility
4. Maintaining consistency with the fitted model parameters`

const simulationPlotGuide = `The plot above shows:
- **Individual Paths:** Sample trajectories from the simulation
- **Mean Path:** Average across all simulated paths
- **Percentile Bands:** Shaded regions showing the 5th-95th percentile range
- **Terminal Distribution:** Histogram of final values across all paths`

const simulationApplications = `### Risk Management

Use simulation results to:
- **Value at Risk (VaR):** Calculate percentiles for risk metrics
- **Stress Testing:** Assess model behavior under various scenarios
- **Tail Risk Analysis:** Examine extreme outcomes and their probabilities

### Decision Making

Simulations inform:
- **Capital Allocation:** Size positions based on potential outcomes
- **Hedging Strategies:** Design hedges that account for path dependency
- **Scenario Planning:** Prepare for range of possible futures

### Model Validation

Compare simulated characteristics with historical data:
- Do simulated volatilities match historical patterns?
- Are extreme events appropriately represented?
- Does the model capture key stylized facts of the data?`

const simulationCaveats = `1. **Model Dependence:**
   - Simulations are only as good as the underlying model
   - Model misspecification propagates to simulated paths
   - Historical parameter estimates may not apply to future

2. **Sampling Variability:**
   - Increasing the number of paths improves precision of percentile estimates
   - Consider running more paths for critical applications

3. **Path Independence:**
   - Each path is an independent realization
   - Real-world dynamics may involve feedback effects not captured by the model

4. **Innovation Distribution:**
   - Standard simulations use Normal innovations
   - Consider Student-t innovations if heavy tails are important
   - Extreme events may still be underestimated

5. **Stationarity Assumption:**
   - Simulations assume stable parameters throughout the horizon
   - Real markets may experience regime shifts or structural changes`
