package domain

// LjungBoxTest holds Ljung-Box results at a set of lags. The three slices
// are parallel and equal length.
type LjungBoxTest struct {
	Lags       []int     `json:"lags"`
	Statistics []float64 `json:"statistics"`
	PValues    []float64 `json:"pvalues"`
}

// JarqueBeraTest holds a single Jarque-Bera normality test result.
type JarqueBeraTest struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"pvalue"`
}

// DiagnosticsReport is the loosely-typed diagnostics document the engine
// writes. Every field is optional; a nil field means the engine did not
// compute that test. An all-nil report is a valid state ("diagnostics not
// computed") and is distinct from a missing file, which the loader rejects.
type DiagnosticsReport struct {
	LjungBox        *LjungBoxTest   `json:"ljung_box_test,omitempty"`
	LjungBoxSquared *LjungBoxTest   `json:"ljung_box_squared_test,omitempty"`
	JarqueBera      *JarqueBeraTest `json:"jarque_bera_test,omitempty"`
}

// Empty reports whether no test result is present.
func (d *DiagnosticsReport) Empty() bool {
	return d == nil || (d.LjungBox == nil && d.LjungBoxSquared == nil && d.JarqueBera == nil)
}
