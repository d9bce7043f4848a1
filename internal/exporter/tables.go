package exporter

import (
	"strconv"

	"agviz/pkg/contracts/domain"
)

// z95 is the rounded two-sided 95% multiplier used for exported interval
// columns, matching the report tables.
const z95 = 1.96

// ForecastHeaders are the columns of an exported forecast table.
var ForecastHeaders = []string{"step", "mean", "std_dev", "ci_lower_95", "ci_upper_95"}

// ForecastRecords flattens a forecast into exportable rows, one per step,
// with the symmetric 95% interval precomputed.
func ForecastRecords(f *domain.ForecastTable) [][]string {
	records := make([][]string, 0, len(f.Steps))
	for _, s := range f.Steps {
		records = append(records, []string{
			strconv.Itoa(s.Step),
			formatFloat(s.Mean),
			formatFloat(s.StdDev),
			formatFloat(s.Mean - z95*s.StdDev),
			formatFloat(s.Mean + z95*s.StdDev),
		})
	}
	return records
}

// SimulationHeaders are the columns of an exported simulation panel.
var SimulationHeaders = []string{"path", "observation", "return", "volatility"}

// SimulationRecords flattens a simulation panel into exportable rows in
// file order.
func SimulationRecords(p *domain.SimulationPanel) [][]string {
	records := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		records = append(records, []string{
			strconv.Itoa(r.Path),
			strconv.Itoa(r.Observation),
			formatFloat(r.Return),
			formatFloat(r.Volatility),
		})
	}
	return records
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
